package api

import (
	"errors"
	"math"
	"strconv"

	"go-file-share/internal/apperror"

	"github.com/gin-gonic/gin"
)

const defaultTopK = 1

// getIDParam 解析路径中的 :id。非数字或 0 返回 400；
// 数字合法但超出存储的 id 范围时不可能存在，直接返回 404。
func getIDParam(c *gin.Context, entity string) (uint, bool) {
	raw := c.Param("id")
	id64, err := strconv.ParseUint(raw, 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange), err == nil && (id64 > math.MaxInt64 || id64 > uint64(^uint(0))):
		respondError(c, apperror.NotFound("%s %s not found", entity, raw))
		return 0, false
	case err != nil, id64 == 0:
		respondError(c, apperror.Validation("invalid %s id %q", entity, raw))
		return 0, false
	}
	return uint(id64), true
}

// getTopK 解析 ?k=，缺省为 1；范围由 service 校验
func getTopK(c *gin.Context) (int, bool) {
	raw, ok := c.GetQuery("k")
	if !ok {
		return defaultTopK, true
	}
	k, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, apperror.Validation("k must be an integer, got %q", raw))
		return 0, false
	}
	return k, true
}
