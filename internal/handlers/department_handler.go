package handlers

import (
	"firewatch/internal/services"
	"firewatch/internal/utils"
	"firewatch/internal/validators"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	departmentService services.DepartmentService
	unitService       services.UnitService
}

func NewDepartmentHandler(departmentService services.DepartmentService, unitService services.UnitService) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
		unitService:       unitService,
	}
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var request validators.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	department, err := h.departmentService.CreateDepartment(c.Request.Context(), request.ToModel())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Department created", department)
}

func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	department, err := h.departmentService.GetDepartment(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Department retrieved", department)
}

func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request validators.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	department, err := h.departmentService.UpdateDepartment(c.Request.Context(), id, request.ToUpdates())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Department updated", department)
}

func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.departmentService.DeleteDepartment(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Department deleted", nil)
}

func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	departments, total, err := h.departmentService.ListDepartments(c.Request.Context(), params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Departments retrieved", departments, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
