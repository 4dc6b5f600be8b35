package service

import (
	"context"

	"go-file-share/internal/apperror"
	"go-file-share/internal/cache"
	"go-file-share/internal/events"
	"go-file-share/internal/model"
	"go-file-share/internal/repository"
	"go-file-share/pkg/logger"

	"go.uber.org/zap"
)

type GroupService struct {
	groupRepo       *repository.GroupRepository
	groupMemberRepo *repository.GroupMemberRepository
	hooks           mutationHooks
}

func NewGroupService(
	groupRepo *repository.GroupRepository,
	groupMemberRepo *repository.GroupMemberRepository,
	c cache.RankingCache,
	p events.Publisher,
) *GroupService {
	return &GroupService{
		groupRepo:       groupRepo,
		groupMemberRepo: groupMemberRepo,
		hooks:           newMutationHooks(c, p),
	}
}

type CreateGroupRequest struct {
	Name string `json:"name" validate:"min=1,max=50"`
}

type AddGroupMemberRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

func (s *GroupService) CreateGroup(ctx context.Context, req CreateGroupRequest) (*model.Group, error) {
	req.Name = trimName(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	group := &model.Group{Name: req.Name}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		logger.L.Error("Error saving group to DB", zap.String("name", req.Name), zap.Error(err))
		return nil, apperror.FromStore(err, "failed to create group")
	}
	group.Users = []model.User{}
	logger.L.Info("Group created", zap.Uint("groupID", group.ID))

	event := events.New(events.TypeGroupCreated)
	event.GroupID = group.ID
	event.Name = group.Name
	s.hooks.committed(ctx, event)
	return group, nil
}

// GetGroup 返回群组及其成员
func (s *GroupService) GetGroup(ctx context.Context, groupID uint) (*model.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, lookupError(err, "group", groupID)
	}
	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context, name string) ([]model.Group, error) {
	groups, err := s.groupRepo.List(ctx, trimName(name))
	if err != nil {
		return nil, apperror.FromStore(err, "failed to list groups")
	}
	return groups, nil
}

// AddUserToGroup 将用户加入群组并返回更新后的群组
func (s *GroupService) AddUserToGroup(ctx context.Context, groupID uint, req AddGroupMemberRequest) (*model.Group, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	group, err := s.groupMemberRepo.AddMember(ctx, groupID, req.UserID)
	if err != nil {
		err = apperror.FromStore(err, "failed to add user %d to group %d", req.UserID, groupID)
		logger.L.Warn("Error adding group member", zap.Uint("groupID", groupID), zap.Uint("userID", req.UserID), zap.Error(err))
		return nil, err
	}
	logger.L.Info("User added to group", zap.Uint("groupID", groupID), zap.Uint("userID", req.UserID))

	event := events.New(events.TypeGroupMemberAdded)
	event.GroupID = groupID
	event.UserID = req.UserID
	s.hooks.committed(ctx, event)
	return group, nil
}
