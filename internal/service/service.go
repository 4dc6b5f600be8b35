package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go-file-share/internal/apperror"
	"go-file-share/internal/cache"
	"go-file-share/internal/events"
	"go-file-share/pkg/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validate = newValidator()

// 错误信息中使用 JSON 字段名
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest 校验请求结构体，失败时返回 ValidationError
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Validation("invalid request: %v", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return apperror.Validation("%s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not be empty", field)
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// mutationHooks 在变更提交后执行：使排名缓存失效并发布事件。
// 两者失败都只记录日志，变更已经持久化。
type mutationHooks struct {
	cache     cache.RankingCache
	publisher events.Publisher
}

func newMutationHooks(c cache.RankingCache, p events.Publisher) mutationHooks {
	if c == nil {
		c = cache.Nop{}
	}
	if p == nil {
		p = events.Nop{}
	}
	return mutationHooks{cache: c, publisher: p}
}

func (h mutationHooks) committed(ctx context.Context, event events.Event) {
	// 变更已提交，客户端断开也要完成失效和发布
	ctx = context.WithoutCancel(ctx)
	if err := h.cache.Invalidate(ctx); err != nil {
		logger.L.Warn("Failed to invalidate ranking cache", zap.String("event", event.Type), zap.Error(err))
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		logger.L.Warn("Failed to publish event", zap.String("event", event.Type), zap.String("eventID", event.ID), zap.Error(err))
	}
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}

// lookupError 把按 ID 查找时的错误转换为带实体名称的 NotFound 或其他分类错误
func lookupError(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("%s %d not found", entity, id)
	}
	return apperror.FromStore(err, "failed to load %s %d", entity, id)
}
