package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"go-file-share/internal/apperror"
	"go-file-share/pkg/logger"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	// 返回当前日志文件路径，为空表示没有日志文件
	logFile func() string
}

func NewHealthHandler(logFile func() string) *HealthHandler {
	if logFile == nil {
		logFile = logger.FilePath
	}
	return &HealthHandler{logFile: logFile}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// Logs 以附件形式返回当前日志文件
func (h *HealthHandler) Logs(c *gin.Context) {
	path := h.logFile()
	if path == "" {
		respondError(c, apperror.NotFound("log file is not configured"))
		return
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		respondError(c, apperror.NotFound("log file %s not found", path))
		return
	}
	if err != nil {
		respondError(c, apperror.Internal(err, "failed to stat log file"))
		return
	}
	logger.Sync()
	c.FileAttachment(path, "app.log")
}
