package bootstrap

import (
	"context"
	"log"

	"direct-chat-be/internal/config"
	"direct-chat-be/internal/controller"
	"direct-chat-be/internal/pkg/blobstore"
	"direct-chat-be/internal/pkg/identity"
	"direct-chat-be/internal/pkg/logger"
	"direct-chat-be/internal/pkg/mailer"
	"direct-chat-be/internal/pkg/serverutils"
	"direct-chat-be/internal/repository/unitofwork"
	"direct-chat-be/internal/service"
	"direct-chat-be/pkg/cache"

	pktNats "direct-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	ModerationController controller.IModerationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	NatsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.Moderation.InboxEmail,
	)

	verifier := identity.NewJwtVerifier(cfg.JWT.Secret)
	authMiddleware := serverutils.AuthMiddleware(verifier)

	blobStore := blobstore.NewLocalBlobStore(cfg.Storage.UploadDir, cfg.App.BaseURL)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Connections cache disabled", err)
		rdb = nil
	}
	roomsCache := cache.NewRoomsCache(rdb)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.RoomActivityTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.RoomActivityTopic,
		roomsCache,
	)

	chatService := service.NewChatService(
		uowFactory,
		blobStore,
		publisherService,
		natsPub,
		roomsCache,
		sysLogger,
		service.ChatOptions{
			StrictMutationChecks: cfg.Chat.StrictMutationChecks,
			EnforceBlocks:        cfg.Chat.EnforceBlocks,
		},
	)
	moderationService := service.NewModerationService(
		uowFactory,
		emailService,
		natsPub,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		ChatController:       controller.NewChatController(chatService, authMiddleware),
		ModerationController: controller.NewModerationController(moderationService, authMiddleware),

		ConsumerService: consumerService,
		NatsPublisher:   natsPub,
	}
}
