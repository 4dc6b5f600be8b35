package service

import (
	"context"

	"go-file-share/internal/apperror"
	"go-file-share/internal/cache"
	"go-file-share/internal/events"
	"go-file-share/internal/model"
	"go-file-share/internal/repository"
	"go-file-share/internal/visibility"
	"go-file-share/pkg/logger"

	"go.uber.org/zap"
)

// FileService 管理文件、文件分享以及分享排名
type FileService struct {
	fileRepo      *repository.FileRepository
	fileShareRepo *repository.FileShareRepository
	cache         cache.RankingCache
	hooks         mutationHooks
	maxK          int
}

func NewFileService(
	fileRepo *repository.FileRepository,
	fileShareRepo *repository.FileShareRepository,
	c cache.RankingCache,
	p events.Publisher,
	maxK int,
) *FileService {
	hooks := newMutationHooks(c, p)
	return &FileService{
		fileRepo:      fileRepo,
		fileShareRepo: fileShareRepo,
		cache:         hooks.cache,
		hooks:         hooks,
		maxK:          maxK,
	}
}

type CreateFileRequest struct {
	Name string `json:"name" validate:"min=1,max=50"`
	Risk *int   `json:"risk" validate:"required,min=0,max=100"`
}

type ShareWithUserRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

type ShareWithGroupRequest struct {
	GroupID uint `json:"group_id" validate:"required"`
}

func (s *FileService) CreateFile(ctx context.Context, req CreateFileRequest) (*model.File, error) {
	req.Name = trimName(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	file := &model.File{Name: req.Name, Risk: *req.Risk}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		logger.L.Error("Error saving file to DB", zap.String("name", req.Name), zap.Error(err))
		return nil, apperror.FromStore(err, "failed to create file")
	}
	file.Users = []model.User{}
	file.Groups = []model.Group{}
	logger.L.Info("File created", zap.Uint("fileID", file.ID), zap.Int("risk", file.Risk))

	event := events.New(events.TypeFileCreated)
	event.FileID = file.ID
	event.Name = file.Name
	s.hooks.committed(ctx, event)
	return file, nil
}

// GetFile 返回文件及其直接分享的用户和分享到的群组
func (s *FileService) GetFile(ctx context.Context, fileID uint) (*model.File, error) {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return nil, lookupError(err, "file", fileID)
	}
	return file, nil
}

func (s *FileService) ListFiles(ctx context.Context, name string) ([]model.File, error) {
	files, err := s.fileRepo.List(ctx, trimName(name))
	if err != nil {
		return nil, apperror.FromStore(err, "failed to list files")
	}
	return files, nil
}

// ShareFileWithUser 与指定用户分享文件
func (s *FileService) ShareFileWithUser(ctx context.Context, fileID uint, req ShareWithUserRequest) (*model.File, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	file, err := s.fileShareRepo.ShareWithUser(ctx, fileID, req.UserID)
	if err != nil {
		err = apperror.FromStore(err, "failed to share file %d with user %d", fileID, req.UserID)
		logger.L.Warn("Failed to share file with user", zap.Uint("fileID", fileID), zap.Uint("userID", req.UserID), zap.Error(err))
		return nil, err
	}
	logger.L.Info("File shared with user", zap.Uint("fileID", fileID), zap.Uint("userID", req.UserID))

	event := events.New(events.TypeFileSharedUser)
	event.FileID = fileID
	event.UserID = req.UserID
	s.hooks.committed(ctx, event)
	return file, nil
}

// ShareFileWithGroup 与指定群组分享文件
func (s *FileService) ShareFileWithGroup(ctx context.Context, fileID uint, req ShareWithGroupRequest) (*model.File, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	file, err := s.fileShareRepo.ShareWithGroup(ctx, fileID, req.GroupID)
	if err != nil {
		err = apperror.FromStore(err, "failed to share file %d with group %d", fileID, req.GroupID)
		logger.L.Warn("Failed to share file with group", zap.Uint("fileID", fileID), zap.Uint("groupID", req.GroupID), zap.Error(err))
		return nil, err
	}
	logger.L.Info("File shared with group", zap.Uint("fileID", fileID), zap.Uint("groupID", req.GroupID))

	event := events.New(events.TypeFileSharedGroup)
	event.FileID = fileID
	event.GroupID = req.GroupID
	s.hooks.committed(ctx, event)
	return file, nil
}

// ResolveVisibility 返回能看到文件的用户ID集合
func (s *FileService) ResolveVisibility(ctx context.Context, fileID uint) (visibility.Set, error) {
	return visibility.NewResolver(s.fileShareRepo).Resolve(ctx, fileID)
}

// TopShared 返回可见用户最多的前 k 个文件，k 必须在 [1, maxK] 内
func (s *FileService) TopShared(ctx context.Context, k int) ([]visibility.Ranked, error) {
	if k < 1 || k > s.maxK {
		return nil, apperror.Validation("k must be between 1 and %d, got %d", s.maxK, k)
	}

	// generation 必须在读取快照之前获取
	gen, err := s.cache.Generation(ctx)
	useCache := err == nil
	if err != nil {
		logger.L.Warn("Failed to read ranking cache generation", zap.Error(err))
	} else if cached, ok, err := s.cache.Get(ctx, gen, k); err != nil {
		logger.L.Warn("Failed to read ranking cache", zap.Int("k", k), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	snap, err := s.fileShareRepo.Snapshot(ctx)
	if err != nil {
		return nil, apperror.FromStore(err, "failed to load share relations")
	}
	ranked, err := visibility.Rank(ctx, snap, k)
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := s.cache.Set(ctx, gen, k, ranked); err != nil {
			logger.L.Warn("Failed to store ranking cache", zap.Int("k", k), zap.Error(err))
		}
	}
	return ranked, nil
}
