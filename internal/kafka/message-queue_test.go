package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/stretchr/testify/assert"
)

type stubPartitionConsumer struct {
	messages chan *sarama.ConsumerMessage
}

func (s *stubPartitionConsumer) AsyncClose()                              {}
func (s *stubPartitionConsumer) Close() error                             { return nil }
func (s *stubPartitionConsumer) Messages() <-chan *sarama.ConsumerMessage { return s.messages }
func (s *stubPartitionConsumer) Errors() <-chan *sarama.ConsumerError     { return nil }
func (s *stubPartitionConsumer) HighWaterMarkOffset() int64               { return 0 }

func TestShutdownBeforeListenAndServe(t *testing.T) {
	mq := &MessageQueue{
		consumer: mocks.NewConsumer(t, nil),
		producer: mocks.NewSyncProducer(t, nil),
	}

	assert.NotPanics(t, func() { mq.Shutdown() })
}

func TestRuntimeStopsWhenMessagesChannelCloses(t *testing.T) {
	messages := make(chan *sarama.ConsumerMessage)
	mq := &MessageQueue{}
	mq.ctx, mq.cancel = context.WithCancel(context.Background())
	defer mq.cancel()

	done := make(chan struct{})
	go func() {
		mq.runtime(subscription{
			partitionConsumer: &stubPartitionConsumer{messages: messages},
			handler:           func(context.Context, []byte) {},
		})
		close(done)
	}()

	close(messages)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runtime keeps running after the messages channel closed")
	}
}
