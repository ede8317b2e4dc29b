package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/services"
	"github.com/SAP-F-2025/university-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
	export  services.ExportService
}

func NewStudentHandler(service services.StudentService, export services.ExportService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
	}
}

// List returns every student account
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, studentMessages)
		return
	}

	h.respondAccounts(c, accounts)
}

// Get returns one student account
// @Summary Get student
// @Tags students
// @Produce json
// @Param id path uint true "Account ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	account, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, studentMessages)
		return
	}

	c.JSON(http.StatusOK, account.ToMap())
}

// Create registers a student account
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Param request body models.StudentCreateRequest true "Account"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} FailureResponse
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req models.StudentCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, studentMessages)
		return
	}

	h.LogRequest(c, "Student created", "account_id", account.ID())
	c.JSON(http.StatusCreated, account.ToMap())
}

// Update applies a partial update
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Param id path uint true "Account ID"
// @Param request body models.StudentPatch true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} FailureResponse
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req models.StudentPatch
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err, studentMessages)
		return
	}

	c.JSON(http.StatusOK, account.ToMap())
}

// Delete removes the account
// @Summary Delete student
// @Tags students
// @Produce json
// @Param id path uint true "Account ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 || h.rejectSelfDelete(c, models.RoleStudent, id) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, studentMessages)
		return
	}

	h.LogRequest(c, "Student deleted", "account_id", id)
	c.JSON(http.StatusOK, MessageResponse{Message: "Student deleted successfully"})
}

// Export downloads the roster as an XLSX workbook
// @Summary Export students
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	data, err := h.export.ExportRoster(c.Request.Context(), models.RoleStudent)
	if err != nil {
		h.handleServiceError(c, err, studentMessages)
		return
	}

	h.sendRoster(c, models.RoleStudent, data)
}
