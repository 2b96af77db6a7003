package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/govindp47/smarthire/internal/config"
	"github.com/govindp47/smarthire/internal/domain/fiber/handler"
	"github.com/govindp47/smarthire/internal/logger"
	"github.com/govindp47/smarthire/internal/middleware"
	"github.com/govindp47/smarthire/internal/model"
	"github.com/govindp47/smarthire/internal/repository"
	"github.com/govindp47/smarthire/internal/service"
	"github.com/govindp47/smarthire/internal/storage"
	"github.com/govindp47/smarthire/internal/usecase"
	"github.com/govindp47/smarthire/internal/util"
	"github.com/govindp47/smarthire/internal/worker"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		fmt.Println("Could not load .env file")
	}

	logger.Init(config.LoadLoggerConfig())
	appConfig := config.LoadAppConfig()
	pipelineConfig := config.LoadPipelineConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	files, err := storage.NewFileStorage(config.LoadStorageConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot initialize file storage")
	}

	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot initialize gemini service")
	}

	var generator service.TextGenerator = gemini
	if pipelineConfig.LLMProvider == "openrouter" {
		generator = service.NewOpenRouterService()
	}

	jobRepo := repository.NewJobRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	chunkRepo := repository.NewChunkRepository(db)

	extractor := &util.FileTextExtractor{}
	parser := service.NewParserService(generator, pipelineConfig.ParserMaxChars, config.LoadGeminiConfig().Model)
	scorer := service.NewScoringService(gemini)

	pool := worker.NewPool(
		pipelineConfig.Workers,
		pipelineConfig.QueueSize,
		pipelineConfig.MaxAttempts,
		pipelineConfig.TaskTimeout,
	)
	pool.Start()

	jobUC := usecase.NewJobUsecase(jobRepo)
	resumeUC := usecase.NewResumeUsecase(jobRepo, resumeRepo, profileRepo, chunkRepo, files)
	parsingUC := usecase.NewParsingUsecase(
		jobRepo, resumeRepo, profileRepo, chunkRepo, files,
		extractor, parser, gemini, pool,
		pipelineConfig.ChunkSize, pipelineConfig.ChunkOverlap,
	)
	scoringUC := usecase.NewScoringUsecase(jobRepo, resumeRepo, profileRepo, scorer, pool)
	searchUC := usecase.NewSearchUsecase(jobRepo, chunkRepo, gemini, generator)

	handler.NewJobHandler(jobUC).RegisterRoutes(app)
	handler.NewResumeHandler(resumeUC).RegisterRoutes(app)
	handler.NewParsingHandler(parsingUC).RegisterRoutes(app)
	handler.NewScoringHandler(scoringUC).RegisterRoutes(app)
	handler.NewSearchHandler(searchUC).RegisterRoutes(app)

	go func() {
		logger.Info().Str("port", appConfig.Port).Msg("server running")
		if err := app.Listen(appConfig.Port); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
	if err := pool.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("worker pool shutdown timed out")
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to database")
	}
	pgDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not get database instance")
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		logger.Fatal().Err(err).Msg("cannot create uuid-ossp extension")
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`).Error; err != nil {
		logger.Fatal().Err(err).Msg("cannot create vector extension")
	}

	err = db.AutoMigrate(
		&model.Job{},
		&model.Resume{},
		&model.ParsedProfile{},
		&model.ResumeChunk{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	return db
}
