package main

import (
	"context"
	"log"
	"net/http"

	"ember_server/config"
	"ember_server/routes"
	"ember_server/services"
	"ember_server/socket"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	log.Println("Initializing AWS clients...")
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	dynamoService := &services.DynamoService{Client: services.InitializeDynamoDBClient(awsCfg)}
	log.Println("AWS clients initialized.")

	// Presence and rate counters live in Redis when configured; otherwise the
	// in-process implementations keep a single-instance deployment working.
	var presence services.PresenceStore
	var limiter services.RateLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		log.Println("Connected to Redis successfully")
		presence = &services.RedisPresence{Client: rdb, TTL: cfg.PresenceTTL}
		limiter = &services.RedisRateLimiter{Client: rdb}
	} else {
		log.Println("REDIS_ADDR not set, using in-memory presence and rate limiting")
		presence = services.NewMemoryPresence(cfg.PresenceTTL)
		limiter = services.NewMemoryRateLimiter()
	}

	cipher, err := services.NewMessageCipher(cfg.MessageSecret, cfg.MessageIVSeed)
	if err != nil {
		log.Fatalf("Failed to initialize message cipher: %v", err)
	}

	// Stores
	swipeStore := &services.DynamoSwipeStore{Dynamo: dynamoService}
	matchStore := &services.DynamoMatchStore{Dynamo: dynamoService}
	conversationStore := &services.DynamoConversationStore{Dynamo: dynamoService}
	messageStore := &services.DynamoMessageStore{Dynamo: dynamoService}
	deviceStore := &services.DynamoDeviceStore{Dynamo: dynamoService}

	// Push runs on its own worker so provider latency never blocks a send.
	pushDispatcher := services.NewPushDispatcher(deviceStore, &services.SNSProvider{
		Client: services.InitializeSNSClient(awsCfg),
	})
	defer pushDispatcher.Close()

	bus := services.NewEventBus()

	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	swipeService := &services.SwipeService{
		Swipes:  swipeStore,
		Matches: matchStore,
		Users:   userProfileService,
		Events:  bus,
	}
	conversationService := &services.ConversationService{
		Conversations: conversationStore,
		Push:          pushDispatcher,
	}
	bus.SubscribeMatchCreated(conversationService.HandleMatchCreated)

	socketServer := socket.NewSocketServer(presence)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	chatService := &services.ChatService{
		Messages:         messageStore,
		Conversations:    conversationStore,
		Presence:         presence,
		Limiter:          limiter,
		Cipher:           cipher,
		Realtime:         socketServer,
		Push:             pushDispatcher,
		Events:           bus,
		MaxMessageLength: cfg.MaxMessageLength,
		ChatSendLimit:    cfg.ChatSendLimit,
		ChatSendWindow:   cfg.ChatSendWindow,
	}
	matchService := &services.MatchService{
		Matches:       matchStore,
		Conversations: conversationStore,
		Users:         userProfileService,
	}
	mediaService := &services.MediaService{
		Client: services.InitializeS3Client(awsCfg),
		Bucket: cfg.S3Bucket,
	}

	// Initialize the router
	r := mux.NewRouter()
	routes.RegisterRoutes(r)
	routes.RegisterSwipeRoutes(r, swipeService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterDeviceRoutes(r, deviceStore)
	routes.RegisterMediaRoutes(r, mediaService)
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
