package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/services"
	"github.com/SAP-F-2025/university-service/internal/utils"
)

type ProfessorHandler struct {
	BaseHandler
	service services.ProfessorService
	export  services.ExportService
}

func NewProfessorHandler(service services.ProfessorService, export services.ExportService, logger utils.Logger) *ProfessorHandler {
	return &ProfessorHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
	}
}

// List returns every professor account
// @Summary List professors
// @Tags professors
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /professors [get]
func (h *ProfessorHandler) List(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, professorMessages)
		return
	}

	h.respondAccounts(c, accounts)
}

// Get returns one professor account
// @Summary Get professor
// @Tags professors
// @Produce json
// @Param id path uint true "Account ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /professors/{id} [get]
func (h *ProfessorHandler) Get(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	account, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, professorMessages)
		return
	}

	c.JSON(http.StatusOK, account.ToMap())
}

// Create registers a professor account
// @Summary Create professor
// @Tags professors
// @Accept json
// @Produce json
// @Param request body models.ProfessorCreateRequest true "Account"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} FailureResponse
// @Router /professors [post]
func (h *ProfessorHandler) Create(c *gin.Context) {
	var req models.ProfessorCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, professorMessages)
		return
	}

	h.LogRequest(c, "Professor created", "account_id", account.ID())
	c.JSON(http.StatusCreated, account.ToMap())
}

// Update applies a partial update
// @Summary Update professor
// @Tags professors
// @Accept json
// @Produce json
// @Param id path uint true "Account ID"
// @Param request body models.ProfessorPatch true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} FailureResponse
// @Router /professors/{id} [put]
func (h *ProfessorHandler) Update(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req models.ProfessorPatch
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err, professorMessages)
		return
	}

	c.JSON(http.StatusOK, account.ToMap())
}

// Delete removes the account
// @Summary Delete professor
// @Tags professors
// @Produce json
// @Param id path uint true "Account ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} ErrorResponse
// @Router /professors/{id} [delete]
func (h *ProfessorHandler) Delete(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 || h.rejectSelfDelete(c, models.RoleProfessor, id) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, professorMessages)
		return
	}

	h.LogRequest(c, "Professor deleted", "account_id", id)
	c.JSON(http.StatusOK, MessageResponse{Message: "Professor deleted successfully"})
}

// Export downloads the roster as an XLSX workbook
// @Summary Export professors
// @Tags professors
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /professors/export [get]
func (h *ProfessorHandler) Export(c *gin.Context) {
	data, err := h.export.ExportRoster(c.Request.Context(), models.RoleProfessor)
	if err != nil {
		h.handleServiceError(c, err, professorMessages)
		return
	}

	h.sendRoster(c, models.RoleProfessor, data)
}
