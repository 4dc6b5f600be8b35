package api

import (
	"net/http"

	"go-file-share/internal/service"
	"go-file-share/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.L.Warn("Failed to bind CreateGroup request", zap.Error(err))
		respondBindError(c, err)
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroup(*group))
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, ok := getIDParam(c, "group")
	if !ok {
		return
	}

	group, err := h.groupService.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroup(*group))
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroups(groups))
}

// AddMember 将用户加入群组，返回更新后的群组
func (h *GroupHandler) AddMember(c *gin.Context) {
	groupID, ok := getIDParam(c, "group")
	if !ok {
		return
	}

	var req service.AddGroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.L.Warn("Failed to bind AddMember request", zap.Uint("groupID", groupID), zap.Error(err))
		respondBindError(c, err)
		return
	}

	group, err := h.groupService.AddUserToGroup(c.Request.Context(), groupID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroup(*group))
}
