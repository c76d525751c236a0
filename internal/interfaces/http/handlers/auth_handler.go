package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"whisperbox.backend/internal/domain/entities"
	"whisperbox.backend/internal/interfaces/http/middleware"
	"whisperbox.backend/internal/interfaces/http/response"
	"whisperbox.backend/internal/usecases"
)

// AuthHandler serves registration, verification and sign-in.
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// SignUp registers a new account and emails a verification code.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var input entities.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authUsecase.Register(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "User registered successfully. Please verify your email", nil)
}

// VerifyCode confirms the emailed verification code.
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var input entities.VerifyCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authUsecase.VerifyCode(c.Request.Context(), input.Username, input.Code); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Account verified successfully", nil)
}

// SignIn authenticates by email or username. When the client asks for a
// session the session ID is also set as an http-only cookie.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var input entities.SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if resp.SessionID != "" {
		c.SetCookie("session_id", resp.SessionID, 0, "/", "", false, true)
	}
	response.Success(c, http.StatusOK, "Signed in successfully", resp)
}

// GetMe returns the authenticated user's profile.
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved successfully", user)
}

// CheckUsername reports whether a username is free to claim. Public, used
// by the sign-up form as the user types.
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Fail(c, http.StatusBadRequest, "Query parameter username is required")
		return
	}

	if err := h.authUsecase.CheckUsernameAvailable(c.Request.Context(), username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Username is available", nil)
}
