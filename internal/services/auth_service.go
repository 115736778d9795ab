package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/utils"
	"firewatch/pkg/cache"
	"firewatch/pkg/logger"
	"firewatch/pkg/sms"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)

	SendPhoneOTP(ctx context.Context, phone string) (*OTPResponse, error)
	VerifyPhoneOTP(ctx context.Context, request *VerifyOTPRequest) error
}

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type AuthResponse struct {
	User   *models.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type OTPResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

type authService struct {
	userRepo    interfaces.UserRepository
	cache       *cache.RedisCache
	smsProvider sms.Provider
	jwtSecret   string
	otpLength   int
	otpExpiry   time.Duration
	otpResend   time.Duration
	logger      *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	redisCache *cache.RedisCache,
	smsProvider sms.Provider,
	jwtSecret string,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		cache:       redisCache,
		smsProvider: smsProvider,
		jwtSecret:   jwtSecret,
		otpLength:   utils.OTPLength,
		otpExpiry:   utils.OTPExpiry,
		otpResend:   utils.OTPResendInterval,
		logger:      logger,
	}
}

func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, errs.Validationf("invalid registration: %v", err)
	}

	phone := utils.NormalizePhone(request.Phone)
	if !utils.IsValidPhone(phone) {
		return nil, errs.Validationf("invalid phone number %q", request.Phone)
	}

	if _, err := s.userRepo.GetByEmail(ctx, request.Email); err == nil {
		return nil, errs.Wrap(errs.ErrConflict, "email already registered")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.GetByPhone(ctx, phone); err == nil {
		return nil, errs.Wrap(errs.ErrConflict, "phone already registered")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Wrap(err, "hashing password")
	}

	role := models.UserRoleCitizen
	switch models.UserRole(request.Role) {
	case models.UserRoleAdmin, models.UserRoleDispatcher:
		role = models.UserRole(request.Role)
	}

	user := &models.User{
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Email:        request.Email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, errs.Wrap(err, "issuing tokens")
	}

	s.logger.WithField("user_id", user.ID.Hex()).Info("User registered")
	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, errs.Validationf("invalid login: %v", err)
	}

	attemptKey := loginAttemptKey(request.Email)
	if raw, err := s.cache.GetString(ctx, attemptKey); err == nil {
		if count, _ := strconv.Atoi(raw); count >= utils.MaxLoginAttempts {
			return nil, errs.Wrap(errs.ErrTooEarly, "too many failed login attempts, try again later")
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.recordFailedLogin(ctx, attemptKey)
			return nil, errs.Validationf("invalid email or password")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)) != nil {
		s.recordFailedLogin(ctx, attemptKey)
		return nil, errs.Validationf("invalid email or password")
	}

	if err := s.cache.Delete(ctx, attemptKey); err != nil {
		s.logger.WithError(err).Debug("Failed to clear login attempt counter")
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, errs.Wrap(err, "issuing tokens")
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	tokens, err := utils.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, errs.Validationf("invalid refresh token")
	}
	return tokens, nil
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) SendPhoneOTP(ctx context.Context, phone string) (*OTPResponse, error) {
	phone = utils.NormalizePhone(phone)
	if !utils.IsValidPhone(phone) {
		return nil, errs.Validationf("invalid phone number %q", phone)
	}

	resendKey := otpResendKey(phone)
	if exists, err := s.cache.Exists(ctx, resendKey); err == nil && exists {
		return nil, errs.Wrap(errs.ErrTooEarly, "an OTP was sent recently, wait before requesting another")
	}

	code := utils.GenerateOTPCode(s.otpLength)
	if err := s.cache.SetString(ctx, otpCodeKey(phone), code, s.otpExpiry); err != nil {
		return nil, errs.Wrap(err, "storing OTP")
	}
	if err := s.cache.SetString(ctx, resendKey, "1", s.otpResend); err != nil {
		s.logger.WithError(err).Warn("Failed to set OTP resend guard")
	}

	_, err := s.smsProvider.SendSMS(ctx, &sms.Request{
		To:      phone,
		Message: fmt.Sprintf("Your %s verification code is %s. It expires in %d minutes.", utils.AppName, code, int(s.otpExpiry.Minutes())),
		Type:    "otp",
	})
	if err != nil {
		return nil, errs.Wrap(err, "sending OTP")
	}

	s.logger.WithField("phone", utils.MaskPhone(phone)).Info("OTP sent")
	return &OTPResponse{Phone: utils.MaskPhone(phone), ExpiresAt: time.Now().Add(s.otpExpiry)}, nil
}

func (s *authService) VerifyPhoneOTP(ctx context.Context, request *VerifyOTPRequest) error {
	if err := utils.ValidateStruct(request); err != nil {
		return errs.Validationf("invalid verification request: %v", err)
	}

	phone := utils.NormalizePhone(request.Phone)
	key := otpCodeKey(phone)

	stored, err := s.cache.GetString(ctx, key)
	if err != nil {
		if cache.IsMiss(err) {
			return errs.Validationf("OTP expired or never sent")
		}
		return errs.Wrap(err, "reading OTP")
	}

	if stored != request.Code {
		return errs.Validationf("incorrect OTP code")
	}

	if err := s.cache.Delete(ctx, key, otpResendKey(phone)); err != nil {
		s.logger.WithError(err).Warn("Failed to clear OTP keys")
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// Verification without an account is still a success; the phone
			// is simply confirmed for later registration.
			return nil
		}
		return err
	}

	return s.userRepo.Update(ctx, user.ID, map[string]interface{}{"phone_verified": true})
}

// recordFailedLogin bumps the per-email failure counter. The window TTL is
// refreshed on every failure so a slow brute force still trips the guard.
func (s *authService) recordFailedLogin(ctx context.Context, key string) {
	if _, err := s.cache.Incr(ctx, key); err != nil {
		s.logger.WithError(err).Debug("Failed to record login attempt")
		return
	}
	if err := s.cache.Expire(ctx, key, utils.LoginAttemptWindow); err != nil {
		s.logger.WithError(err).Debug("Failed to expire login attempt counter")
	}
}

func otpCodeKey(phone string) string      { return "otp:code:" + phone }
func otpResendKey(phone string) string    { return "otp:resend:" + phone }
func loginAttemptKey(email string) string { return "login:attempts:" + email }
