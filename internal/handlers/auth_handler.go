package handlers

import (
	"firewatch/internal/services"
	"firewatch/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var request services.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &request)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Registered successfully", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var request services.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Logged in successfully", response)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), request.RefreshToken)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Token refreshed", tokens)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user)
}

func (h *AuthHandler) SendPhoneOTP(c *gin.Context) {
	var request struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.SendPhoneOTP(c.Request.Context(), request.Phone)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "OTP sent", response)
}

func (h *AuthHandler) VerifyPhoneOTP(c *gin.Context) {
	var request services.VerifyOTPRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.VerifyPhoneOTP(c.Request.Context(), &request); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Phone verified", nil)
}

// currentUserID pulls the authenticated user's id set by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}
