package events

import (
	"context"
	"errors"
	"time"

	"go-file-share/pkg/config"
	"go-file-share/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TypeUserCreated      = "user.created"
	TypeGroupCreated     = "group.created"
	TypeGroupMemberAdded = "group.member_added"
	TypeFileCreated      = "file.created"
	TypeFileSharedUser   = "file.shared_with_user"
	TypeFileSharedGroup  = "file.shared_with_group"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	FileID     uint      `json:"file_id,omitempty"`
	UserID     uint      `json:"user_id,omitempty"`
	GroupID    uint      `json:"group_id,omitempty"`
	Name       string    `json:"name,omitempty"`
}

func New(eventType string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// CreatePublisher 根据配置创建相应的 Publisher 实现
func CreatePublisher(cfg config.MessagingConfig) (Publisher, error) {
	logger.L.Info("Creating event publisher", zap.String("provider", cfg.Provider))

	switch cfg.Provider {
	case "", "none":
		return Nop{}, nil
	case "log":
		return LogPublisher{}, nil
	case "kafka":
		return NewKafkaPublisher(cfg.Kafka)
	default:
		return nil, errors.New("unsupported messaging provider")
	}
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// 只写日志
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event Event) error {
	logger.L.Info("Domain event",
		zap.String("eventID", event.ID),
		zap.String("type", event.Type),
		zap.Uint("fileID", event.FileID),
		zap.Uint("userID", event.UserID),
		zap.Uint("groupID", event.GroupID),
		zap.String("name", event.Name))
	return nil
}

func (LogPublisher) Close() error { return nil }
