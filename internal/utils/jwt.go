package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JWTClaims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Role   string             `json:"role"`
	Email  string             `json:"email"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

func GenerateTokenPair(userID primitive.ObjectID, role, email, secretKey string) (*TokenPair, error) {
	accessToken, err := signToken(userID, role, email, secretKey, JWTAccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := signToken(userID, role, email, secretKey, JWTRefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(JWTAccessTokenTTL.Seconds()),
		TokenType:    "Bearer",
	}, nil
}

func signToken(userID primitive.ObjectID, role, email, secretKey string, ttl time.Duration) (string, error) {
	claims := &JWTClaims{
		UserID: userID,
		Role:   role,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    AppName,
			Subject:   userID.Hex(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func ValidateToken(tokenString, secretKey string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func RefreshAccessToken(refreshTokenString, secretKey string) (*TokenPair, error) {
	claims, err := ValidateToken(refreshTokenString, secretKey)
	if err != nil {
		return nil, err
	}

	return GenerateTokenPair(claims.UserID, claims.Role, claims.Email, secretKey)
}
