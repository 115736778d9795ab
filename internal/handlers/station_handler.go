package handlers

import (
	"firewatch/internal/services"
	"firewatch/internal/utils"
	"firewatch/internal/validators"

	"github.com/gin-gonic/gin"
)

type StationHandler struct {
	stationService   services.StationService
	personnelService services.PersonnelService
}

func NewStationHandler(stationService services.StationService, personnelService services.PersonnelService) *StationHandler {
	return &StationHandler{
		stationService:   stationService,
		personnelService: personnelService,
	}
}

func (h *StationHandler) CreateStation(c *gin.Context) {
	var request validators.CreateStationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	station, err := h.stationService.CreateStation(c.Request.Context(), request.ToModel())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Station created", station)
}

func (h *StationHandler) GetStation(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	station, err := h.stationService.GetStation(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Station retrieved", station)
}

func (h *StationHandler) UpdateStation(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request validators.UpdateStationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	station, err := h.stationService.UpdateStation(c.Request.Context(), id, request.ToUpdates())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Station updated", station)
}

func (h *StationHandler) DeleteStation(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.stationService.DeleteStation(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Station deleted", nil)
}

func (h *StationHandler) ListStations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	stations, total, err := h.stationService.ListStations(c.Request.Context(), params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Stations retrieved", stations, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *StationHandler) GetStationPersonnel(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	personnel, err := h.personnelService.GetStationPersonnel(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Personnel retrieved", personnel)
}
