package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"steprally/grouphub/internal/model"
	"steprally/grouphub/internal/service"
	"steprally/grouphub/pkg/response"
)

type GroupHandler struct {
	groupService service.GroupService
}

func NewGroupHandler(groupService service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
	PeriodType  string `json:"period_type" binding:"required"`
}

type UpdateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type JoinGroupRequest struct {
	JoinCode string `json:"join_code"`
}

type JoinByCodeRequest struct {
	JoinCode string `json:"join_code" binding:"required"`
}

type InviteMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func parsePeriodType(s string) (model.PeriodType, bool) {
	switch s {
	case "daily":
		return model.PeriodDaily, true
	case "weekly":
		return model.PeriodWeekly, true
	case "monthly":
		return model.PeriodMonthly, true
	case "custom":
		return model.PeriodCustom, true
	}
	return 0, false
}

func parseRole(s string) (model.GroupRole, bool) {
	switch s {
	case "admin":
		return model.RoleAdmin, true
	case "member":
		return model.RoleMember, true
	}
	return 0, false
}

func (h *GroupHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	periodType, ok := parsePeriodType(req.PeriodType)
	if !ok {
		response.BadRequest(c, "unsupported period type")
		return
	}

	detail, err := h.groupService.CreateGroup(c.Request.Context(), userID, service.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		PeriodType:  periodType,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, detail)
}

func (h *GroupHandler) Get(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}
	detail, err := h.groupService.GetGroup(c.Request.Context(), userID, groupID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, detail)
}

func (h *GroupHandler) ListPublic(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	groups, err := h.groupService.ListPublicGroups(c.Request.Context(), limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, groups)
}

func (h *GroupHandler) ListMine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	summaries, err := h.groupService.GetUserGroups(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, summaries)
}

func (h *GroupHandler) Update(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	detail, err := h.groupService.UpdateGroup(c.Request.Context(), userID, groupID, service.UpdateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, detail)
}

func (h *GroupHandler) Delete(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}
	if err := h.groupService.DeleteGroup(c.Request.Context(), userID, groupID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *GroupHandler) Join(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}

	var req JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	detail, err := h.groupService.JoinGroup(c.Request.Context(), userID, groupID, req.JoinCode)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, detail)
}

func (h *GroupHandler) JoinByCode(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req JoinByCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	detail, err := h.groupService.JoinByCode(c.Request.Context(), userID, req.JoinCode)
	if err != nil {
		// A code that matches nothing reads as a missing group here.
		if errors.Is(err, service.ErrInvalidJoinCode) {
			response.NotFound(c, "invalid join code")
			return
		}
		writeServiceError(c, err)
		return
	}
	response.Success(c, detail)
}

func (h *GroupHandler) Leave(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}
	if err := h.groupService.LeaveGroup(c.Request.Context(), userID, groupID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *GroupHandler) Invite(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.groupService.InviteMember(c.Request.Context(), userID, groupID, targetID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *GroupHandler) RemoveMember(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}
	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.groupService.RemoveMember(c.Request.Context(), userID, groupID, targetID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *GroupHandler) ChangeRole(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}
	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	role, ok := parseRole(req.Role)
	if !ok {
		response.BadRequest(c, "unsupported role")
		return
	}

	if err := h.groupService.ChangeMemberRole(c.Request.Context(), userID, groupID, targetID, role); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *GroupHandler) RegenerateJoinCode(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}
	code, err := h.groupService.RegenerateJoinCode(c.Request.Context(), userID, groupID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"join_code": code})
}

func (h *GroupHandler) Members(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}
	members, err := h.groupService.GetMembers(c.Request.Context(), userID, groupID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, members)
}

func (h *GroupHandler) Leaderboard(c *gin.Context) {
	userID, groupID, ok := h.callerAndGroup(c)
	if !ok {
		return
	}
	board, err := h.groupService.GetLeaderboard(c.Request.Context(), userID, groupID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, board)
}

func (h *GroupHandler) callerAndGroup(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return uuid.Nil, uuid.Nil, false
	}
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, groupID, true
}
