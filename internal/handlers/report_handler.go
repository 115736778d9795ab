package handlers

import (
	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/services"
	"firewatch/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	var request models.CreateReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), &request)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Report created", report)
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Report retrieved", report)
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var patch models.UpdateReportRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	report, err := h.reportService.UpdateReport(c.Request.Context(), id, &patch)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Report updated", report)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Report deleted", nil)
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter, err := reportFilterFromQuery(c)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	reports, total, err := h.reportService.ListReports(c.Request.Context(), filter, params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Reports retrieved", reports, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *ReportHandler) GetStats(c *gin.Context) {
	filter, err := statsFilterFromQuery(c)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	stats, err := h.reportService.ComputeStats(c.Request.Context(), filter)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Stats computed", stats)
}

func invalidQueryValue(param, value string) error {
	return errs.Validationf("invalid %s %q", param, value)
}

func reportFilterFromQuery(c *gin.Context) (*interfaces.ReportFilter, error) {
	filter := &interfaces.ReportFilter{}

	if raw := c.Query("status"); raw != "" {
		status := models.ReportStatus(raw)
		if !status.Valid() {
			return nil, invalidQueryValue("status", raw)
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := models.ReportPriority(raw)
		if !priority.Valid() {
			return nil, invalidQueryValue("priority", raw)
		}
		filter.Priority = &priority
	}
	if raw := c.Query("station_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, invalidQueryValue("station_id", raw)
		}
		filter.StationID = &id
	}

	return filter, nil
}

func statsFilterFromQuery(c *gin.Context) (*models.ReportStatsFilter, error) {
	filter := &models.ReportStatsFilter{}

	if raw := c.Query("station_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, invalidQueryValue("station_id", raw)
		}
		filter.StationID = &id
	}
	if raw := c.Query("from"); raw != "" {
		from, err := utils.ParseTimeISO(raw)
		if err != nil {
			return nil, invalidQueryValue("from", raw)
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := utils.ParseTimeISO(raw)
		if err != nil {
			return nil, invalidQueryValue("to", raw)
		}
		filter.To = &to
	}

	return filter, nil
}
