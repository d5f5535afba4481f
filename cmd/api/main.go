package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"paws/internal/adapter/api"
	"paws/internal/adapter/api/handler"
	apimiddleware "paws/internal/adapter/api/middleware"
	"paws/internal/adapter/api/router"
	"paws/internal/adapter/repository"
	"paws/internal/adapter/repository/memory"
	domainrepo "paws/internal/domain/repository"
	"paws/internal/infrastructure/fanout"
	"paws/internal/infrastructure/ratelimit"
	"paws/internal/infrastructure/websocket"
	"paws/internal/usecase"
	"paws/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var (
		authClient       *auth.Client
		messageRepo      domainrepo.MessageRepository
		notificationRepo domainrepo.NotificationRepository
		userRepo         domainrepo.UserRepository
		changeFeed       domainrepo.ChangeFeed
	)

	if cfg.FirebaseProject != "" {
		var opts []option.ClientOption
		if json := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); json != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(json)))
		} else if path := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); path != "" {
			opts = append(opts, option.WithCredentialsFile(path))
		}

		firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}

		authClient, err = firebaseApp.Auth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}

		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		messageRepo = repository.NewFirestoreMessageRepository(firestoreClient)
		notificationRepo = repository.NewFirestoreNotificationRepository(firestoreClient)
		userRepo = repository.NewFirestoreUserRepository(firestoreClient)
		changeFeed = repository.NewFirestoreChangeFeed(firestoreClient)
	} else {
		log.Printf("FIREBASE_PROJECT_ID not set, using in-memory backend (development only)")
		messageRepo = memory.NewMessageRepository()
		notificationRepo = memory.NewNotificationRepository()
		userRepo = memory.NewUserRepository()
		changeFeed = memory.NewChangeFeed()
	}

	wsManager := websocket.NewManager()

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	if cfg.FanoutAddr != "" {
		bridge, err := fanout.NewBridge(cfg.FanoutAddr, wsManager)
		if err != nil {
			log.Fatalf("Failed to connect fan-out bridge: %v", err)
		}
		defer bridge.Close()
		bridge.Start(ctx)
	}

	chatUseCase := usecase.NewChatUseCase(messageRepo, userRepo, wsManager, limiter)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)
	changeFeedUseCase := usecase.NewChangeFeedUseCase(notificationRepo, notificationUseCase, wsManager)

	changeFeedUseCase.Run(ctx, changeFeed)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	chatHandler := handler.NewChatHandler(chatUseCase)
	notificationHandler := handler.NewNotificationHandler(notificationUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, chatUseCase)
	healthHandler := handler.NewHealthHandler()

	router.SetupChatRouter(e, chatHandler)
	router.SetupNotificationRouter(e, notificationHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)
	router.SetupHealthRouter(e, healthHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
