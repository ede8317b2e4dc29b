package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/services"
	"github.com/SAP-F-2025/university-service/internal/utils"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// FailureResponse is used where clients expect the success flag
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResponse acknowledges a mutation without a body
type MessageResponse struct {
	Message string `json:"message"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs through the request-scoped logger when one is present
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// parseIDParam writes a 400 and returns 0 when the path parameter is not a
// positive integer
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID must be a positive number",
		})
		return 0
	}
	return uint(id)
}

// bindJSON decodes the body into req or writes a 400
func (h *BaseHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// rejectSelfDelete writes a 400 when the caller is deleting their own
// account. An empty role matches the caller on any route.
func (h *BaseHandler) rejectSelfDelete(c *gin.Context, role models.UserRole, id uint) bool {
	callerID, err := GetUserIDFromContext(c)
	if err != nil || callerID != id {
		return false
	}
	if role != "" {
		callerRole, err := GetUserRoleFromContext(c)
		if err != nil || callerRole != role {
			return false
		}
	}

	h.LogRequest(c, "Self delete rejected", "account_id", id)
	c.JSON(http.StatusBadRequest, FailureResponse{Message: "You cannot delete your own account"})
	return true
}

func (h *BaseHandler) respondAccounts(c *gin.Context, accounts []*models.Account) {
	c.JSON(http.StatusOK, models.AccountsToMaps(accounts))
}

func (h *BaseHandler) sendRoster(c *gin.Context, role models.UserRole, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+string(role)+`-roster.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// accountErrorMessages names the resource in 404 and 409 replies
type accountErrorMessages struct {
	notFound            string
	duplicateIdentifier string
}

var (
	studentMessages   = accountErrorMessages{notFound: "Student not found", duplicateIdentifier: "Student ID already in use"}
	professorMessages = accountErrorMessages{notFound: "Professor not found", duplicateIdentifier: "Employee ID already in use"}
	staffMessages     = accountErrorMessages{notFound: "Staff member not found", duplicateIdentifier: "Employee ID already in use"}
)

// handleServiceError maps service errors onto status codes. Unknown errors
// are logged and hidden behind a 500.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error, msgs accountErrorMessages) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Validation failed"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: msgs.notFound})
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, FailureResponse{Message: "Email already registered"})
	case errors.Is(err, services.ErrDuplicateIdentifier):
		c.JSON(http.StatusConflict, FailureResponse{Message: msgs.duplicateIdentifier})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, FailureResponse{Message: "Invalid credentials"})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
