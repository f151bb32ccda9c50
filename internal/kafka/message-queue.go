package kafka

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
)

// MessageQueue of kafka.
type MessageQueue struct {
	ctx    context.Context
	cancel context.CancelFunc

	client   sarama.Client
	producer sarama.SyncProducer
	consumer sarama.Consumer

	subscription map[string]subscription
}

// NewMessageQueue ...
func NewMessageQueue(
	addrs []string,
) (mq *MessageQueue, err error) {
	mq = &MessageQueue{
		subscription: make(map[string]subscription),
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	if mq.client, err = sarama.NewClient(addrs, cfg); err != nil {
		return
	}
	if mq.producer, err = sarama.NewSyncProducerFromClient(mq.client); err != nil {
		return
	}

	mq.consumer, err = sarama.NewConsumerFromClient(mq.client)
	return
}

// Consume adds consume topic. Must be called before ListenAndServe.
func (mq *MessageQueue) Consume(topic string, h Handler) error {
	if _, isExist := mq.subscription[topic]; isExist {
		return fmt.Errorf("topic %s: %w", topic, errTopicIsExist)
	}

	cp, err := mq.consumer.ConsumePartition(topic, 0, sarama.OffsetNewest)
	if err != nil {
		return err
	}
	mq.subscription[topic] = subscription{
		partitionConsumer: cp,
		handler:           h,
	}
	return nil
}

// NewPublish returns publish func.
func (mq *MessageQueue) NewPublish(topic string) Publish {
	return func(message []byte) (err error) {
		msg := &sarama.ProducerMessage{
			Topic: topic,
			Value: sarama.ByteEncoder(message),
		}
		_, _, err = mq.producer.SendMessage(msg)
		return
	}
}

// ListenAndServe message queue.
func (mq *MessageQueue) ListenAndServe() {
	mq.ctx, mq.cancel = context.WithCancel(context.Background())
	for _, s := range mq.subscription {
		go mq.runtime(s)
	}
}

// Shutdown consumers message queue.
func (mq *MessageQueue) Shutdown() {
	if mq.cancel != nil {
		mq.cancel()
	}
	mq.consumer.Close()
	mq.producer.Close()
}

func (mq *MessageQueue) runtime(s subscription) {
	defer s.partitionConsumer.Close()
	for {
		select {
		case <-mq.ctx.Done():
			return
		case m := <-s.partitionConsumer.Messages():
			// The messages channel closes when the consumer shuts
			// down and then delivers nil.
			if m == nil {
				return
			}
			go s.handler(mq.ctx, m.Value)
		}
	}
}
