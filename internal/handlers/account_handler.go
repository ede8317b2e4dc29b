package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/university-service/internal/services"
	"github.com/SAP-F-2025/university-service/internal/utils"
)

var accountMessages = accountErrorMessages{notFound: "User not found"}

// AccountHandler serves the routes that span every role
type AccountHandler struct {
	BaseHandler
	service services.AccountService
}

func NewAccountHandler(service services.AccountService, logger utils.Logger) *AccountHandler {
	return &AccountHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List returns every account ordered by id
// @Summary List all accounts
// @Tags users
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /users [get]
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, accountMessages)
		return
	}

	h.respondAccounts(c, accounts)
}

// Get returns one account of any role
// @Summary Get any account
// @Tags users
// @Produce json
// @Param id path uint true "Account ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	account, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, accountMessages)
		return
	}

	c.JSON(http.StatusOK, account.ToMap())
}

// Delete removes an account of any role. Callers cannot delete themselves.
// @Summary Delete any account
// @Tags users
// @Produce json
// @Param id path uint true "Account ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 || h.rejectSelfDelete(c, "", id) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, accountMessages)
		return
	}

	h.LogRequest(c, "Account deleted", "account_id", id)
	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// Stats returns account counts per role
// @Summary Account statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.AccountStats
// @Router /dashboard/stats [get]
func (h *AccountHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, accountMessages)
		return
	}

	c.JSON(http.StatusOK, stats)
}
