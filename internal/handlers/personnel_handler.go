package handlers

import (
	"firewatch/internal/services"
	"firewatch/internal/utils"
	"firewatch/internal/validators"

	"github.com/gin-gonic/gin"
)

type PersonnelHandler struct {
	personnelService services.PersonnelService
}

func NewPersonnelHandler(personnelService services.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{
		personnelService: personnelService,
	}
}

func (h *PersonnelHandler) CreatePersonnel(c *gin.Context) {
	var request validators.CreatePersonnelRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	personnel, err := h.personnelService.CreatePersonnel(c.Request.Context(), request.ToModel())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Personnel created", personnel)
}

func (h *PersonnelHandler) GetPersonnel(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	personnel, err := h.personnelService.GetPersonnel(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Personnel retrieved", personnel)
}

func (h *PersonnelHandler) UpdatePersonnel(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request validators.UpdatePersonnelRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	personnel, err := h.personnelService.UpdatePersonnel(c.Request.Context(), id, request.ToUpdates())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Personnel updated", personnel)
}

func (h *PersonnelHandler) DeletePersonnel(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.personnelService.DeletePersonnel(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Personnel deleted", nil)
}

func (h *PersonnelHandler) ListPersonnel(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	personnel, total, err := h.personnelService.ListPersonnel(c.Request.Context(), params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Personnel retrieved", personnel, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
