package handlers

import (
	"errors"
	"net/http"
	"time"

	"spebit-service/internal/services"
	"spebit-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"full_name" binding:"required"`
	MobileNumber string `json:"mobile_number"`
	ReferralCode string `json:"referral_code"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), services.RegisterDTO{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		MobileNumber: req.MobileNumber,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, common.NewErrorResponse("Email already registered", nil, http.StatusConflict))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to register", nil, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(user, "Registered successfully"))
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAccountBlocked) {
			c.JSON(http.StatusForbidden, common.NewErrorResponse("Account is blocked", nil, http.StatusForbidden))
			return
		}
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid credentials", nil, http.StatusUnauthorized))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result, "Logged in"))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := c.GetString("tokenID")
	expiry, _ := c.Get("tokenExpiry")
	exp, _ := expiry.(time.Time)

	if err := h.Auth.Logout(c.Request.Context(), tokenID, exp); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to sign out", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Signed out"))
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	if err := h.Auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to request reset", nil, http.StatusInternalServerError))
		return
	}
	// Same answer whether or not the account exists.
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "If the email exists, a reset link has been sent"))
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	if err := h.Auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrResetTokenInvalid) {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Reset token is invalid or expired", nil, http.StatusBadRequest))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to reset password", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Password updated"))
}
