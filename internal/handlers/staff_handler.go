package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/services"
	"github.com/SAP-F-2025/university-service/internal/utils"
)

type StaffHandler struct {
	BaseHandler
	service services.StaffService
	export  services.ExportService
}

func NewStaffHandler(service services.StaffService, export services.ExportService, logger utils.Logger) *StaffHandler {
	return &StaffHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
	}
}

// List returns every staff account
// @Summary List staff
// @Tags staff
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, staffMessages)
		return
	}

	h.respondAccounts(c, accounts)
}

// Get returns one staff account
// @Summary Get staff
// @Tags staff
// @Produce json
// @Param id path uint true "Account ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /staff/{id} [get]
func (h *StaffHandler) Get(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	account, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, staffMessages)
		return
	}

	c.JSON(http.StatusOK, account.ToMap())
}

// Create registers a staff account
// @Summary Create staff
// @Tags staff
// @Accept json
// @Produce json
// @Param request body models.StaffCreateRequest true "Account"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} FailureResponse
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req models.StaffCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, staffMessages)
		return
	}

	h.LogRequest(c, "Staff member created", "account_id", account.ID())
	c.JSON(http.StatusCreated, account.ToMap())
}

// Update applies a partial update
// @Summary Update staff
// @Tags staff
// @Accept json
// @Produce json
// @Param id path uint true "Account ID"
// @Param request body models.StaffPatch true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} FailureResponse
// @Router /staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req models.StaffPatch
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err, staffMessages)
		return
	}

	c.JSON(http.StatusOK, account.ToMap())
}

// Delete removes the account
// @Summary Delete staff
// @Tags staff
// @Produce json
// @Param id path uint true "Account ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} ErrorResponse
// @Router /staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 || h.rejectSelfDelete(c, models.RoleStaff, id) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, staffMessages)
		return
	}

	h.LogRequest(c, "Staff member deleted", "account_id", id)
	c.JSON(http.StatusOK, MessageResponse{Message: "Staff member deleted successfully"})
}

// Export downloads the roster as an XLSX workbook
// @Summary Export staff
// @Tags staff
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /staff/export [get]
func (h *StaffHandler) Export(c *gin.Context) {
	data, err := h.export.ExportRoster(c.Request.Context(), models.RoleStaff)
	if err != nil {
		h.handleServiceError(c, err, staffMessages)
		return
	}

	h.sendRoster(c, models.RoleStaff, data)
}
