package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"storyshare-backend/internal/config"
	infraCache "storyshare-backend/internal/infrastructure/cache"
	"storyshare-backend/internal/infrastructure/database"
	"storyshare-backend/internal/infrastructure/email"
	"storyshare-backend/internal/infrastructure/queue"
	"storyshare-backend/pkg/cache"
	"storyshare-backend/pkg/jwt"

	"storyshare-backend/internal/domains/genre"
	genreHandler "storyshare-backend/internal/domains/genre/handler"
	genreRepo "storyshare-backend/internal/domains/genre/repository"
	genreService "storyshare-backend/internal/domains/genre/service"
	"storyshare-backend/internal/domains/owner"
	ownerHandler "storyshare-backend/internal/domains/owner/handler"
	ownerRepo "storyshare-backend/internal/domains/owner/repository"
	ownerService "storyshare-backend/internal/domains/owner/service"
	"storyshare-backend/internal/domains/story"
	storyHandler "storyshare-backend/internal/domains/story/handler"
	storyRepo "storyshare-backend/internal/domains/story/repository"
	storyService "storyshare-backend/internal/domains/story/service"
	"storyshare-backend/internal/domains/user"
	userHandler "storyshare-backend/internal/domains/user/handler"
	userRepo "storyshare-backend/internal/domains/user/repository"
	userService "storyshare-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the application's full dependency graph, built once
// at startup in dependency order.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config       *config.Config
	DB           *database.MongoDB
	Cache        cache.Cache
	JWTManager   *jwt.Manager
	Queue        *queue.Client
	EmailService email.EmailService

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	UserRepo  user.Repository
	OwnerRepo owner.Repository
	GenreRepo genre.Repository
	StoryRepo story.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================

	UserService  user.Service
	OwnerService owner.Service
	GenreService genre.Service
	StoryService story.Service

	// ========================================
	// HANDLER LAYER
	// ========================================

	UserHandler  *userHandler.UserHandler
	OwnerHandler *ownerHandler.OwnerHandler
	GenreHandler *genreHandler.GenreHandler
	StoryHandler *storyHandler.StoryHandler
}

// NewContainer builds the dependency graph: config, then
// infrastructure, then repositories, services, and handlers. Order
// matters; a wrong order panics on a nil dependency.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: CONNECT MONGODB
	// ========================================
	log.Println("🗄️  Connecting to MongoDB...")

	db := database.NewMongoDB(cfg.Mongo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	c.DB = db
	log.Println("✅ MongoDB connected")

	// ========================================
	// STEP 3: CONNECT REDIS
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// Redis failure is non-critical: the story list cache degrades to
	// the database.
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	// ========================================
	// STEP 4: AUXILIARY INFRASTRUCTURE
	// ========================================

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)
	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.EmailService = email.NewSMTPEmailService(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.From)

	// ========================================
	// STEP 5: REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")
	c.initRepositories()

	// ========================================
	// STEP 6: SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")
	c.initServices()

	// ========================================
	// STEP 7: HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	c.UserRepo = userRepo.NewMongoUserRepository(c.DB)
	c.OwnerRepo = ownerRepo.NewMongoOwnerRepository(c.DB)
	c.GenreRepo = genreRepo.NewMongoGenreRepository(c.DB)
	c.StoryRepo = storyRepo.NewMongoStoryRepository(c.DB)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		c.Queue,
		c.EmailService,
		c.Config.App.FrontendURL,
	)
	c.OwnerService = ownerService.NewOwnerService(c.OwnerRepo)
	c.GenreService = genreService.NewGenreService(c.GenreRepo)
	c.StoryService = storyService.NewStoryService(
		c.StoryRepo,
		c.UserRepo,
		c.OwnerRepo,
		c.GenreRepo,
		c.Cache,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.OwnerHandler = ownerHandler.NewOwnerHandler(c.OwnerService)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.StoryHandler = storyHandler.NewStoryHandler(c.StoryService)
}

// Cleanup releases every held connection. Called on shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Printf("⚠️  Failed to close queue client: %v", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			}
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(context.Background()); err != nil {
			log.Printf("⚠️  Failed to close MongoDB: %v", err)
		}
	}

	log.Println("✅ Container cleanup complete")
}
