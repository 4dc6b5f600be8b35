package visibility

import (
	"context"
	"sort"

	"go-file-share/internal/apperror"
)

// 计算可见性所需的连接表查询
type ShareSource interface {
	FileExists(ctx context.Context, fileID uint) (bool, error)
	// 直接分享的用户
	DirectUserIDs(ctx context.Context, fileID uint) ([]uint, error)
	// 分享到的群组
	GroupShareIDs(ctx context.Context, fileID uint) ([]uint, error)
	GroupMemberIDs(ctx context.Context, groupID uint) ([]uint, error)
}

// 用户ID集合
type Set map[uint]struct{}

func (s Set) Add(ids ...uint) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

func (s Set) Has(id uint) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Sorted() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type Resolver struct {
	src ShareSource
}

func NewResolver(src ShareSource) *Resolver {
	return &Resolver{src: src}
}

// Resolve 返回能看到文件的用户：直接分享的用户加上被分享群组的成员，去重
func (r *Resolver) Resolve(ctx context.Context, fileID uint) (Set, error) {
	exists, err := r.src.FileExists(ctx, fileID)
	if err != nil {
		return nil, apperror.FromStore(err, "failed to look up file %d", fileID)
	}
	if !exists {
		return nil, apperror.NotFound("file %d not found", fileID)
	}

	viewers := Set{}

	direct, err := r.src.DirectUserIDs(ctx, fileID)
	if err != nil {
		return nil, apperror.FromStore(err, "failed to load direct shares of file %d", fileID)
	}
	viewers.Add(direct...)

	groups, err := r.src.GroupShareIDs(ctx, fileID)
	if err != nil {
		return nil, apperror.FromStore(err, "failed to load group shares of file %d", fileID)
	}
	for _, groupID := range groups {
		members, err := r.src.GroupMemberIDs(ctx, groupID)
		if err != nil {
			return nil, apperror.FromStore(err, "failed to load members of group %d", groupID)
		}
		viewers.Add(members...)
	}

	return viewers, nil
}
