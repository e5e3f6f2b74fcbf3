package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoxd/internal/service"
)

// AuthHandler handles token issuance.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token handles POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "password is required")
		return
	}

	token, err := h.authService.Login(input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, token)
}
