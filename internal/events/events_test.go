package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-file-share/pkg/config"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := New(TypeFileCreated)
	b := New(TypeFileCreated)
	assert.Equal(t, TypeFileCreated, a.Type)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.OccurredAt.IsZero())
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got Event
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Type != TypeFileSharedUser || got.FileID != 3 || got.UserID != 7 {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	p := NewKafkaPublisherWithProducer(producer, "fileshare")
	event := New(TypeFileSharedUser)
	event.FileID = 3
	event.UserID = 7

	require.NoError(t, p.Publish(context.Background(), event))
	require.NoError(t, p.Close())
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewKafkaPublisherWithProducer(producer, "fileshare")
	err := p.Publish(context.Background(), New(TypeUserCreated))
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestKafkaPublisher_CanceledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	p := NewKafkaPublisherWithProducer(producer, "fileshare")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, New(TypeUserCreated)), context.Canceled)
	require.NoError(t, p.Close())
}

func TestTopicAndKey(t *testing.T) {
	p := NewKafkaPublisherWithProducer(nil, "fs")
	assert.Equal(t, "fs_file", p.buildTopicName(TypeFileSharedGroup))
	assert.Equal(t, "fs_group", p.buildTopicName(TypeGroupMemberAdded))
	assert.Equal(t, "fs_user", p.buildTopicName(TypeUserCreated))

	assert.Equal(t, "file-4", partitionKey(Event{FileID: 4, GroupID: 2}))
	assert.Equal(t, "group-2", partitionKey(Event{GroupID: 2, UserID: 1}))
	assert.Equal(t, "user-1", partitionKey(Event{UserID: 1}))
}

func TestCreatePublisher(t *testing.T) {
	p, err := CreatePublisher(config.MessagingConfig{Provider: "none"})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, p)

	p, err = CreatePublisher(config.MessagingConfig{Provider: "log"})
	require.NoError(t, err)
	assert.IsType(t, LogPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), New(TypeGroupCreated)))

	_, err = CreatePublisher(config.MessagingConfig{Provider: "carrier-pigeon"})
	assert.Error(t, err)
}
