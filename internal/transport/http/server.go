package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corrigeaqui/internal/cache"
	"corrigeaqui/internal/config"
	"corrigeaqui/internal/database"
	"corrigeaqui/internal/handler"
	"corrigeaqui/internal/queue"
	appredis "corrigeaqui/internal/redis"
	"corrigeaqui/internal/repository"
	"corrigeaqui/internal/service"
	"corrigeaqui/internal/worker"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis
	redisClient, err := appredis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// 5. Queue and cache
	publisher := queue.NewPublisher(redisClient.Client)
	consumer := queue.NewConsumer(redisClient.Client)
	markerCache := cache.NewMarkerCache(redisClient.Client)

	// 6. Services
	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	postService := service.NewPostService(postRepo, categoryRepo, publisher)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)
	engagementService := service.NewEngagementService(likeRepo, postRepo, commentRepo)
	reportService := service.NewReportService(reportRepo, postRepo, commentRepo, publisher)
	feedService := service.NewFeedService(postRepo, commentRepo, likeRepo, userRepo, categoryRepo, markerCache)

	mediaService, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create media service: %w", err)
	}

	// 7. Lifecycle worker
	workerHandler := worker.NewHandler(markerCache, postRepo)
	workerManager := worker.NewManager(consumer, workerHandler, worker.DefaultManagerConfig())
	if err := workerManager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	defer workerManager.Stop()

	// 8. Handlers and router
	router := NewRouter(RouterConfig{
		AuthHandler:     handler.NewAuthHandler(authService, userService),
		UserHandler:     handler.NewUserHandler(userService),
		PostHandler:     handler.NewPostHandler(postService, feedService),
		CommentHandler:  handler.NewCommentHandler(commentService, feedService),
		LikeHandler:     handler.NewLikeHandler(engagementService),
		ReportHandler:   handler.NewReportHandler(reportService),
		CategoryHandler: handler.NewCategoryHandler(categoryService),
		MediaHandler:    handler.NewMediaHandler(mediaService),
		JWTSecret:       cfg.JWTSecret,
	})

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// 9. Serve with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("Received signal %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
