package visibility

import (
	"context"
	"sort"

	"go-file-share/internal/apperror"
)

// 排名列表中的一项
type Ranked struct {
	FileID  uint     `json:"file_id"`
	Name    string   `json:"name"`
	Risk    int      `json:"risk"`
	Count   int      `json:"count"`
	Viewers []string `json:"users"`
}

type viewer struct {
	id   uint
	name string
}

// Rank 返回可见用户最多的前 k 个文件。数量相同时按文件 id 升序，
// 用户名按字母序，重名时按用户 id。
func Rank(ctx context.Context, snap *Snapshot, k int) ([]Ranked, error) {
	if k < 1 {
		return nil, apperror.Validation("k must be positive, got %d", k)
	}

	resolver := NewResolver(snap)
	ranked := make([]Ranked, 0, len(snap.Files))
	for _, f := range snap.Files {
		viewers, err := resolver.Resolve(ctx, f.ID)
		if err != nil {
			return nil, err
		}

		named := make([]viewer, 0, len(viewers))
		for _, userID := range viewers.Sorted() {
			name, ok := snap.UserName(userID)
			if !ok {
				return nil, apperror.Internal(nil, "file %d is visible to unknown user %d", f.ID, userID)
			}
			named = append(named, viewer{id: userID, name: name})
		}
		sort.SliceStable(named, func(i, j int) bool {
			if named[i].name != named[j].name {
				return named[i].name < named[j].name
			}
			return named[i].id < named[j].id
		})

		names := make([]string, len(named))
		for i, v := range named {
			names[i] = v.name
		}
		ranked = append(ranked, Ranked{
			FileID:  f.ID,
			Name:    f.Name,
			Risk:    f.Risk,
			Count:   len(viewers),
			Viewers: names,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].FileID < ranked[j].FileID
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked, nil
}
