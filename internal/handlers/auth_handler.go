package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/services"
	"github.com/SAP-F-2025/university-service/internal/utils"
)

var authMessages = accountErrorMessages{notFound: "Account not found"}

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Login exchanges email and password for an access token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} FailureResponse
// @Failure 401 {object} FailureResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, FailureResponse{Message: "Email and password are required"})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrValidationFailed) {
			c.JSON(http.StatusBadRequest, FailureResponse{Message: "Email and password are required"})
			return
		}
		h.handleServiceError(c, err, authMessages)
		return
	}

	h.LogRequest(c, "User logged in", "user_id", resp.User["id"])
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the token the request was made with
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Missing authorization token"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		h.handleServiceError(c, err, authMessages)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me returns the caller's own account
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Missing authorization token"})
		return
	}

	account, err := h.service.Me(c.Request.Context(), claims.Identity())
	if err != nil {
		h.handleServiceError(c, err, authMessages)
		return
	}

	c.JSON(http.StatusOK, account.ToMap())
}
