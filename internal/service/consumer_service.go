package service

import (
	"context"
	"encoding/json"
	"log"

	"direct-chat-be/internal/dto"
	"direct-chat-be/pkg/cache"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the room-activity topic and drops the cached
// connections listing of every affected participant, so the next read sees
// the fresh preview and ordering.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	roomsCache *cache.RoomsCache
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	roomsCache *cache.RoomsCache,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		roomsCache: roomsCache,
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
	var payload dto.RoomActivityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal room activity message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.roomsCache.Invalidate(ctx, payload.Participants...)
	msg.Ack()
}
