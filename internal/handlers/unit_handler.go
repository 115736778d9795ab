package handlers

import (
	"firewatch/internal/services"
	"firewatch/internal/utils"
	"firewatch/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UnitHandler struct {
	unitService services.UnitService
}

func NewUnitHandler(unitService services.UnitService) *UnitHandler {
	return &UnitHandler{
		unitService: unitService,
	}
}

func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var request validators.CreateUnitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	unit, err := h.unitService.CreateUnit(c.Request.Context(), request.ToModel())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Unit created", unit)
}

func (h *UnitHandler) GetUnit(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	unit, err := h.unitService.GetUnit(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Unit retrieved", unit)
}

func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request validators.UpdateUnitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	unit, err := h.unitService.UpdateUnit(c.Request.Context(), id, request.ToUpdates())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Unit updated", unit)
}

func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.unitService.DeleteUnit(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Unit deleted", nil)
}

func (h *UnitHandler) ListUnits(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	units, total, err := h.unitService.ListUnits(c.Request.Context(), params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Units retrieved", units, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *UnitHandler) GetDepartmentUnits(c *gin.Context) {
	departmentID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	units, err := h.unitService.GetUnitsByDepartment(c.Request.Context(), departmentID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Units retrieved", units)
}

// ActivateUnit places a unit on duty.
func (h *UnitHandler) ActivateUnit(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	unit, err := h.unitService.Activate(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Unit activated", unit)
}

// DeactivateUnit takes a unit off duty, subject to the morning cutoff.
func (h *UnitHandler) DeactivateUnit(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	unit, err := h.unitService.Deactivate(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Unit deactivated", unit)
}

// SweepUnits force-deactivates every overdue unit. Exposed for operators;
// the background worker calls the same service operation.
func (h *UnitHandler) SweepUnits(c *gin.Context) {
	result, err := h.unitService.AutoDeactivateSweep(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Sweep finished", result)
}

// pathObjectID parses an ObjectID path parameter, answering 400 itself on
// bad input.
func pathObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+param)
		return primitive.NilObjectID, false
	}
	return id, true
}
