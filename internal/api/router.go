package api

import (
	"time"

	"go-file-share/internal/middleware"
	"go-file-share/internal/service"

	"github.com/gin-gonic/gin"
)

type Services struct {
	Users  *service.UserService
	Groups *service.GroupService
	Files  *service.FileService
}

type RouterOptions struct {
	// 每个请求的存储超时，0 表示不限制
	QueryTimeout time.Duration
	// 日志文件路径的来源，默认 logger.FilePath
	LogFile func() string
}

// NewRouter 注册所有路由
func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.GinZapLogger(), middleware.Recovery())
	r.Use(middleware.RequestTimeout(opts.QueryTimeout))

	health := NewHealthHandler(opts.LogFile)
	r.GET("/", health.Health)
	r.GET("/logs", health.Logs)

	userHandler := NewUserHandler(svc.Users)
	users := r.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
	}

	groupHandler := NewGroupHandler(svc.Groups)
	groups := r.Group("/groups")
	{
		groups.POST("", groupHandler.CreateGroup)
		groups.GET("", groupHandler.ListGroups)
		groups.GET("/:id", groupHandler.GetGroup)
		groups.POST("/:id/members", groupHandler.AddMember)
	}

	fileHandler := NewFileHandler(svc.Files)
	files := r.Group("/files")
	{
		files.POST("", fileHandler.CreateFile)
		files.GET("", fileHandler.ListFiles)
		files.GET("/top", fileHandler.TopShared)
		files.GET("/:id", fileHandler.GetFile)
		files.POST("/:id/share-user", fileHandler.ShareWithUser)
		files.POST("/:id/share-group", fileHandler.ShareWithGroup)
	}

	return r
}
