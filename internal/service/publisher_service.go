package service

import (
	"context"
	"encoding/json"
	"time"

	"bible-study-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	// PublishStudyEvent puts a study event on the in-process bus. Failures
	// are returned but callers treat the bus as auxiliary.
	PublishStudyEvent(ctx context.Context, eventType string, payload map[string]interface{}) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (p *publisherService) PublishStudyEvent(ctx context.Context, eventType string, payload map[string]interface{}) error {
	body := dto.StudyEventMessage{
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now(),
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), raw)
	return p.pubSub.Publish(p.topicName, msg)
}
