package api

import (
	"net/http"

	"go-file-share/internal/service"
	"go-file-share/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

func (h *FileHandler) CreateFile(c *gin.Context) {
	var req service.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.L.Warn("Failed to bind CreateFile request", zap.Error(err))
		respondBindError(c, err)
		return
	}

	file, err := h.fileService.CreateFile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFile(*file))
}

func (h *FileHandler) GetFile(c *gin.Context) {
	fileID, ok := getIDParam(c, "file")
	if !ok {
		return
	}

	file, err := h.fileService.GetFile(c.Request.Context(), fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFile(*file))
}

func (h *FileHandler) ListFiles(c *gin.Context) {
	files, err := h.fileService.ListFiles(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFiles(files))
}

func (h *FileHandler) ShareWithUser(c *gin.Context) {
	fileID, ok := getIDParam(c, "file")
	if !ok {
		return
	}

	var req service.ShareWithUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.L.Warn("Failed to bind ShareWithUser request", zap.Uint("fileID", fileID), zap.Error(err))
		respondBindError(c, err)
		return
	}

	file, err := h.fileService.ShareFileWithUser(c.Request.Context(), fileID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFile(*file))
}

func (h *FileHandler) ShareWithGroup(c *gin.Context) {
	fileID, ok := getIDParam(c, "file")
	if !ok {
		return
	}

	var req service.ShareWithGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.L.Warn("Failed to bind ShareWithGroup request", zap.Uint("fileID", fileID), zap.Error(err))
		respondBindError(c, err)
		return
	}

	file, err := h.fileService.ShareFileWithGroup(c.Request.Context(), fileID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFile(*file))
}

// TopShared 返回可见用户最多的 k 个文件，?k= 缺省为 1
func (h *FileHandler) TopShared(c *gin.Context) {
	k, ok := getTopK(c)
	if !ok {
		return
	}

	ranked, err := h.fileService.TopShared(c.Request.Context(), k)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTopShared(ranked))
}
