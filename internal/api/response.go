package api

import (
	"errors"
	"net/http"

	"go-file-share/internal/apperror"
	"go-file-share/internal/model"
	"go-file-share/internal/visibility"
	"go-file-share/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type userResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type groupResponse struct {
	ID    uint           `json:"id"`
	Name  string         `json:"name"`
	Users []userResponse `json:"users"`
}

type fileResponse struct {
	ID     uint            `json:"id"`
	Name   string          `json:"name"`
	Risk   int             `json:"risk"`
	Users  []userResponse  `json:"users"`
	Groups []groupResponse `json:"groups"`
}

type topSharedResponse struct {
	Name  string   `json:"name"`
	Risk  int      `json:"risk"`
	Users []string `json:"users"`
}

func toUser(u model.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name}
}

// 列表字段始终输出为 []，不会是 null
func toUsers(users []model.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	return out
}

func toGroup(g model.Group) groupResponse {
	return groupResponse{ID: g.ID, Name: g.Name, Users: toUsers(g.Users)}
}

func toGroups(groups []model.Group) []groupResponse {
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroup(g))
	}
	return out
}

func toFile(f model.File) fileResponse {
	return fileResponse{
		ID:     f.ID,
		Name:   f.Name,
		Risk:   f.Risk,
		Users:  toUsers(f.Users),
		Groups: toGroups(f.Groups),
	}
}

func toFiles(files []model.File) []fileResponse {
	out := make([]fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, toFile(f))
	}
	return out
}

func toTopShared(ranked []visibility.Ranked) []topSharedResponse {
	out := make([]topSharedResponse, 0, len(ranked))
	for _, r := range ranked {
		users := r.Viewers
		if users == nil {
			users = []string{}
		}
		out = append(out, topSharedResponse{Name: r.Name, Risk: r.Risk, Users: users})
	}
	return out
}

// respondError 根据错误类型写出状态码和 {"error", "kind"}
func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)

	detail := "internal server error"
	var appErr *apperror.Error
	if errors.As(err, &appErr) && kind != apperror.KindInternal {
		detail = appErr.Detail
	}

	fields := []zap.Field{zap.String("kind", string(kind)), zap.Error(err)}
	if status >= http.StatusInternalServerError {
		logger.L.Error("Request failed", fields...)
	} else {
		logger.L.Debug("Request rejected", fields...)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": detail, "kind": kind})
}

// respondBindError 处理请求体解析失败
func respondBindError(c *gin.Context, err error) {
	respondError(c, apperror.Validation("invalid request body: %v", err))
}
