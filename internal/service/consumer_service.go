package service

import (
	"context"
	"encoding/json"
	"log"

	"bible-study-be/internal/dto"
	"bible-study-be/pkg/events"
	pktNats "bible-study-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process study event bus. Events go to the
// durable bus when one is connected; otherwise they are handed straight to
// the notification service so a single instance still delivers.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	eventPub      *pktNats.Publisher
	notifications *NotificationService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPub *pktNats.Publisher,
	notifications *NotificationService,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		eventPub:      eventPub,
		notifications: notifications,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.StudyEventMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal study event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	evt := events.BaseEvent{
		Type:       payload.Type,
		Data:       payload.Payload,
		OccurredAt: payload.OccurredAt,
	}

	if cs.eventPub != nil {
		if err := cs.eventPub.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to forward %s to event bus, delivering locally: %v", payload.Type, err)
			cs.deliverLocally(ctx, evt)
		}
		msg.Ack()
		return
	}

	cs.deliverLocally(ctx, evt)
	msg.Ack()
}

func (cs *consumerService) deliverLocally(ctx context.Context, evt events.BaseEvent) {
	if cs.notifications == nil {
		return
	}
	if err := cs.notifications.HandleEvent(ctx, evt); err != nil {
		log.Printf("[ERROR] Local notification delivery failed for %s: %v", evt.Type, err)
	}
}
