package bootstrap

import (
	"context"
	"log"
	"time"

	"bible-study-be/internal/config"
	"bible-study-be/internal/constant"
	"bible-study-be/internal/controller"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/handler"
	"bible-study-be/internal/mapper"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/repository/implementation"
	"bible-study-be/internal/repository/localstore"
	"bible-study-be/internal/repository/memory"
	"bible-study-be/internal/service"
	"bible-study-be/internal/websocket"
	"bible-study-be/pkg/bibleapi"
	"bible-study-be/pkg/gemini"
	"bible-study-be/pkg/study"
	"bible-study-be/pkg/supabase"

	pktNats "bible-study-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const studyEventsTopic = "study_events"

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	ProfileController controller.IProfileController
	ChapterController controller.IChapterController
	ChatController    controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

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
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. External Collaborators
	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.ServiceKey)
	textClient := bibleapi.NewClient(cfg.BibleAPI.BaseURL)
	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	chatClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.ChatModel)
	generator := study.NewGeminiGenerator(geminiClient)

	// 4. Repositories
	profileRepo := implementation.NewSupabaseProfileRepository(supabaseClient, mapper.NewProfileMapper(), sysLogger)
	chapterCache := memory.NewChapterCache()
	chatSessions := memory.NewChatSessionRepository()
	localStore := localstore.NewStore(localstore.NewRedisKV(rdb), sysLogger)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// A corrupt stored chapter is dropped and refetched on the next request;
	// connected clients get a non-blocking heads-up.
	localStore.OnCorruption(func(key string) {
		wsHub.Broadcast(entity.Notification{
			Id:        uuid.New(),
			Type:      constant.NotificationCacheReset,
			Title:     "Saved chapter reset",
			Body:      "A saved chapter was unreadable and will be loaded again.",
			CreatedAt: time.Now(),
		})
	})

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, studyEventsTopic)
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	consumerService := service.NewConsumerService(pubSub, studyEventsTopic, natsPub, notifService)

	if natsSub != nil {
		go notifService.Start()
	}

	authService := service.NewAuthService(supabaseClient, profileRepo, publisherService, sysLogger)
	profileService := service.NewProfileService(profileRepo, publisherService, sysLogger)
	chapterService := service.NewChapterService(
		profileRepo,
		chapterCache,
		localStore,
		textClient,
		generator,
		publisherService,
		sysLogger,
	)

	chatLogger := logger.NewIsolatedLogger(cfg.App.ChatLogFilePath)
	chatService := service.NewChatService(
		chatSessions,
		profileRepo,
		chapterCache,
		func(instruction string) entity.ChatStreamer { return chatClient.NewChatSession(instruction) },
		chatLogger,
	)

	// Handler
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		AuthController:      controller.NewAuthController(authService),
		ProfileController:   controller.NewProfileController(profileService),
		ChapterController:   controller.NewChapterController(chapterService, profileService),
		ChatController:      controller.NewChatController(chatService, chatLogger),

		ConsumerService: consumerService,
	}
}
