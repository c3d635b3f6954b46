package service

import (
	"context"
	"fmt"
	"time"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/pkg/events"
	pktNats "bible-study-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userId string, notification entity.Notification)
	Broadcast(notification entity.Notification)
}

// NotificationService turns study events into user-facing notifications and
// pushes them over the websocket hub.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus. Without a subscriber the service
// still works through HandleEvent, fed directly by the in-process consumer.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("notification_service", "no event bus subscriber, local delivery only", nil)
		return
	}
	err := s.subscriber.Subscribe("study.>", "study-notif-worker", s.HandleEvent)
	if err != nil {
		s.logger.Error("notification_service", "failed to start subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("notification_service", "listening to study.>", nil)
}

// HandleEvent builds the notification for one study event and delivers it.
func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	notif, ok := s.buildNotification(event)
	if !ok {
		return nil
	}

	if s.delivery == nil {
		return nil
	}
	if notif.UserId == "" {
		s.delivery.Broadcast(notif)
	} else {
		s.delivery.Send(notif.UserId, notif)
	}
	return nil
}

func (s *NotificationService) buildNotification(event events.Event) (entity.Notification, bool) {
	payload := event.Payload()
	userId, _ := payload["user_id"].(string)
	chapter, _ := payload["chapter"].(string)

	var title, body string
	switch event.EventType() {
	case constant.EventChapterCached:
		title = "Study guide ready"
		body = fmt.Sprintf("Your study content for %s is ready to read offline.", chapter)
	case constant.EventChapterCompleted:
		title = "Chapter completed"
		body = fmt.Sprintf("Nice work finishing %s.", chapter)
	case constant.EventBookmarkAdded:
		title = "Bookmark added"
		body = fmt.Sprintf("%s was added to your bookmarks.", chapter)
	case constant.EventUserLogin:
		// Login events feed analytics, not the user's inbox.
		return entity.Notification{}, false
	default:
		s.logger.Warn("notification_service", "unknown event type", map[string]interface{}{"type": event.EventType()})
		return entity.Notification{}, false
	}

	occurredAt := event.Timestamp()
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return entity.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		Type:      event.EventType(),
		Title:     title,
		Body:      body,
		CreatedAt: occurredAt,
	}, true
}
