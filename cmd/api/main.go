package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"stylemate/internal/adapter/api"
	"stylemate/internal/adapter/api/handler"
	apimiddleware "stylemate/internal/adapter/api/middleware"
	"stylemate/internal/adapter/api/router"
	"stylemate/internal/adapter/repository"
	"stylemate/internal/domain/service"
	"stylemate/internal/infrastructure/firebase"
	"stylemate/internal/infrastructure/storage"
	"stylemate/internal/infrastructure/websocket"
	"stylemate/internal/usecase"
	"stylemate/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := ""

	// Try to get service account from environment variable (for production)
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		// Fallback to file path (for local development)
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(
		ctx,
		cfg.StorageBucket,
		cfg.FirebaseProject,
		serviceAccountPath,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	stateRepo := repository.NewFirestoreStateRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	sessionManager := usecase.NewSessionManager(stateRepo, cfg.DebounceWindow)

	taggingService := service.NewHTTPTaggingService(cfg.TaggingEndpoint, cfg.TaggingAPIKey)

	authUseCase := usecase.NewAuthUseCase(userRepo, sessionManager, storageClient)
	closetUseCase := usecase.NewClosetUseCase(sessionManager, storageClient)
	deckUseCase := usecase.NewDeckUseCase(sessionManager, stateRepo, cfg.DeckSampleLimit)
	swipeUseCase := usecase.NewSwipeUseCase(sessionManager, stateRepo)
	requestUseCase := usecase.NewRequestUseCase(sessionManager, stateRepo)
	matchUseCase := usecase.NewMatchUseCase(sessionManager, stateRepo)
	transactionUseCase := usecase.NewTransactionUseCase(sessionManager, stateRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, sessionManager, wsManager)
	reconcileUseCase := usecase.NewReconcileUseCase(stateRepo, cfg.DeckSampleLimit)

	handler.Setup(
		firebaseAuthClient,
		authUseCase,
		closetUseCase,
		deckUseCase,
		swipeUseCase,
		requestUseCase,
		matchUseCase,
		transactionUseCase,
		chatUseCase,
		taggingService,
	)
	handler.SetupHealthHandler()

	reconcileUseCase.StartReconcileJob(ctx, cfg.ReconcileEvery)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsManager, chatUseCase, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
