package handlers

import (
	"net/http"

	"gaia_backend/internal/http/middleware"
	"gaia_backend/internal/logger"
	"gaia_backend/internal/repository"
	"gaia_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	user, err := h.Users.Register(req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("user registered", "user_id", user.ID, "email", user.Email)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "user registered successfully",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	if req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.Users.VerifyCredentials(req.Email, req.Password)
	if err != nil {
		middleware.AuthFailures.WithLabelValues("bad_credentials").Inc()
		fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := service.GenerateJWT(user)
	if err != nil {
		fail(c, http.StatusInternalServerError, "token generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "login successful",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	if req.Email == "" {
		fail(c, http.StatusBadRequest, "email is required")
		return
	}
	if !repository.ValidEmail(req.Email) {
		fail(c, http.StatusBadRequest, "invalid email")
		return
	}

	user, err := h.Users.GetByEmail(req.Email)
	if err != nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}

	code := service.GenerateResetCode()
	h.Resets.Issue(req.Email, code, user.ID, h.CodeTTL)

	// delivery is fire-and-forget with respect to the response
	if err := h.Sender.SendResetCode(req.Email, code); err != nil {
		logger.Error("reset code delivery failed", "email", req.Email, "err", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "verification code sent to your email",
		"email":   req.Email,
	})
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *Handler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	if req.Email == "" || req.Code == "" {
		fail(c, http.StatusBadRequest, "email and code are required")
		return
	}

	if err := h.Resets.Verify(req.Email, req.Code); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "code verified successfully",
		"email":   req.Email,
	})
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	if req.Email == "" || req.Code == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		fail(c, http.StatusBadRequest, "all fields are required")
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		fail(c, http.StatusBadRequest, repository.ErrPasswordMismatch.Error())
		return
	}
	if len(req.NewPassword) < 6 {
		fail(c, http.StatusBadRequest, repository.ErrPasswordTooShort.Error())
		return
	}

	// Consume re-checks expiry: time may have passed since verify-code.
	if _, err := h.Resets.Consume(req.Email, req.Code); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Users.SetPassword(req.Email, req.NewPassword); err != nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}

	logger.Info("password reset", "email", req.Email)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "password reset successfully",
	})
}
