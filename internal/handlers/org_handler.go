package handlers

import (
	"firewatch/internal/services"
	"firewatch/internal/utils"
	"firewatch/internal/validators"

	"github.com/gin-gonic/gin"
)

// OrgHandler serves the flat organizational lookups: ranks, roles, groups.
type OrgHandler struct {
	rankService  services.RankService
	roleService  services.RoleService
	groupService services.GroupService
}

func NewOrgHandler(rankService services.RankService, roleService services.RoleService, groupService services.GroupService) *OrgHandler {
	return &OrgHandler{
		rankService:  rankService,
		roleService:  roleService,
		groupService: groupService,
	}
}

func (h *OrgHandler) CreateRank(c *gin.Context) {
	var request validators.CreateRankRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	rank, err := h.rankService.CreateRank(c.Request.Context(), request.ToModel())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.CreatedResponse(c, "Rank created", rank)
}

func (h *OrgHandler) GetRank(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	rank, err := h.rankService.GetRank(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, "Rank retrieved", rank)
}

func (h *OrgHandler) UpdateRank(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var request validators.UpdateRankRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	rank, err := h.rankService.UpdateRank(c.Request.Context(), id, request.ToUpdates())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, "Rank updated", rank)
}

func (h *OrgHandler) DeleteRank(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.rankService.DeleteRank(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, "Rank deleted", nil)
}

func (h *OrgHandler) ListRanks(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	ranks, total, err := h.rankService.ListRanks(c.Request.Context(), params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponseWithMeta(c, "Ranks retrieved", ranks, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *OrgHandler) CreateRole(c *gin.Context) {
	var request validators.CreateNamedRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), request.ToRole())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.CreatedResponse(c, "Role created", role)
}

func (h *OrgHandler) GetRole(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	role, err := h.roleService.GetRole(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, "Role retrieved", role)
}

func (h *OrgHandler) UpdateRole(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var request validators.UpdateNamedRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	role, err := h.roleService.UpdateRole(c.Request.Context(), id, request.ToUpdates())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, "Role updated", role)
}

func (h *OrgHandler) DeleteRole(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.roleService.DeleteRole(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, "Role deleted", nil)
}

func (h *OrgHandler) ListRoles(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	roles, total, err := h.roleService.ListRoles(c.Request.Context(), params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponseWithMeta(c, "Roles retrieved", roles, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *OrgHandler) CreateGroup(c *gin.Context) {
	var request validators.CreateNamedRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), request.ToGroup())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.CreatedResponse(c, "Group created", group)
}

func (h *OrgHandler) GetGroup(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	group, err := h.groupService.GetGroup(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, "Group retrieved", group)
}

func (h *OrgHandler) UpdateGroup(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var request validators.UpdateNamedRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	group, err := h.groupService.UpdateGroup(c.Request.Context(), id, request.ToUpdates())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, "Group updated", group)
}

func (h *OrgHandler) DeleteGroup(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.groupService.DeleteGroup(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, "Group deleted", nil)
}

func (h *OrgHandler) ListGroups(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	groups, total, err := h.groupService.ListGroups(c.Request.Context(), params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	utils.SuccessResponseWithMeta(c, "Groups retrieved", groups, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
