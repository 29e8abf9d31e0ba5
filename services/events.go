package services

import (
	"blogapp/global"
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	EventLikeAdded        = "like.added"
	EventLikeRemoved      = "like.removed"
	EventBlacklistAdded   = "blacklist.added"
	EventBlacklistRemoved = "blacklist.removed"
)

type Event struct {
	Type     string    `json:"type"`
	UserID   uint      `json:"user_id"`
	TargetID uint      `json:"target_id"`
	At       time.Time `json:"at"`
}

// publishEvent 把事件投递到 RabbitMQ；未配置时直接跳过，失败只记日志
func publishEvent(ctx context.Context, eventType string, userID, targetID uint) {
	ch := global.RabbitChannel
	if ch == nil {
		return
	}

	ev := Event{Type: eventType, UserID: userID, TargetID: targetID, At: time.Now().UTC()}
	body, err := json.Marshal(ev)
	if err != nil {
		logrus.WithError(err).Error("marshal event")
		return
	}

	err = ch.PublishWithContext(ctx, "", global.RabbitQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.At,
		Type:         eventType,
		Body:         body,
	})
	if err != nil {
		logrus.WithError(err).WithField("type", eventType).Warn("publish event failed")
	}
}
