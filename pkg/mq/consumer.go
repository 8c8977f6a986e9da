package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

type LikeEventHandler interface {
	HandleLikeEvent(ctx context.Context, event *LikeEvent) error
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	if err := ch.Qos(10, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	consumer := &Consumer{
		conn:    conn,
		channel: ch,
	}
	// 消费者可能先于API启动, 队列由双方各自声明
	if err := declareTopology(ch); err != nil {
		consumer.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}
	return consumer, nil
}

func (c *Consumer) ConsumeLikeEvents(ctx context.Context, handler LikeEventHandler) error {
	msgs, err := c.channel.Consume(
		LikeEventQueue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				hlog.Info("Like event consumer context cancelled")
				return
			case d, ok := <-msgs:
				if !ok {
					hlog.Info("Like event consumer channel closed")
					return
				}
				handleLikeDelivery(ctx, d, handler)
			}
		}
	}()

	return nil
}

// handleLikeDelivery 无法解析的消息直接丢弃, 处理失败的消息只重新入队一次
func handleLikeDelivery(ctx context.Context, d amqp091.Delivery, handler LikeEventHandler) {
	var event LikeEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		hlog.Errorf("Failed to unmarshal like event: %v", err)
		d.Nack(false, false)
		return
	}

	if err := handler.HandleLikeEvent(ctx, &event); err != nil {
		hlog.CtxErrorf(ctx, "Failed to handle like event %s: %v", event.EventID, err)
		d.Nack(false, !d.Redelivered)
		return
	}

	d.Ack(false)
	hlog.CtxDebugf(ctx, "Successfully processed like event: %+v", event)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
