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

type UserService struct {
	userRepo *repository.UserRepository
	hooks    mutationHooks
}

func NewUserService(userRepo *repository.UserRepository, c cache.RankingCache, p events.Publisher) *UserService {
	return &UserService{userRepo: userRepo, hooks: newMutationHooks(c, p)}
}

// 创建用户请求
type CreateUserRequest struct {
	Name string `json:"name" validate:"min=1,max=50"`
}

func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	req.Name = trimName(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user := &model.User{Name: req.Name}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.L.Error("Error saving user to DB", zap.String("name", req.Name), zap.Error(err))
		return nil, apperror.FromStore(err, "failed to create user")
	}
	logger.L.Info("User created", zap.Uint("userID", user.ID))

	event := events.New(events.TypeUserCreated)
	event.UserID = user.ID
	event.Name = user.Name
	s.hooks.committed(ctx, event)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user", userID)
	}
	return user, nil
}

// ListUsers 返回所有用户，name 非空时只返回同名用户
func (s *UserService) ListUsers(ctx context.Context, name string) ([]model.User, error) {
	users, err := s.userRepo.List(ctx, trimName(name))
	if err != nil {
		return nil, apperror.FromStore(err, "failed to list users")
	}
	return users, nil
}
