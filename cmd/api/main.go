package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizhub-api/internal/config"
	"github.com/yourusername/quizhub-api/internal/handler"
	"github.com/yourusername/quizhub-api/internal/middleware"
	pgRepo "github.com/yourusername/quizhub-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizhub-api/internal/repository/redis"
	"github.com/yourusername/quizhub-api/internal/service"
	"github.com/yourusername/quizhub-api/pkg/auth"
	"github.com/yourusername/quizhub-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	subjectRepo := pgRepo.NewSubjectRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	subjectService := service.NewSubjectService(subjectRepo)
	quizService := service.NewQuizService(quizRepo, subjectRepo, cacheRepo)
	attemptService := service.NewAttemptService(attemptRepo, quizRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	subjectHandler := handler.NewSubjectHandler(subjectService)
	quizHandler := handler.NewQuizHandler(quizService, attemptService)
	attemptHandler := handler.NewAttemptHandler(attemptService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация (публичные маршруты)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Предметы
		subjects := api.Group("/subjects")
		subjects.Use(authMiddleware.RequireAuth())
		{
			subjects.POST("", subjectHandler.CreateSubject)
			subjects.GET("", subjectHandler.ListSubjects)

			subjectWithID := subjects.Group("/:subjectId")
			subjectWithID.Use(middleware.ExtractUintParam("subjectId", "subjectID"))
			{
				subjectWithID.GET("", subjectHandler.GetSubject)
				subjectWithID.PUT("", subjectHandler.UpdateSubject)
				subjectWithID.DELETE("", subjectHandler.DeleteSubject)
			}
		}

		// Викторины
		quizzes := api.Group("/quizzes")
		quizzes.Use(authMiddleware.RequireAuth())
		{
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.GET("/available", quizHandler.ListAvailable)
			quizzes.GET("/mine", quizHandler.ListMine)
			quizzes.GET("/preview", quizHandler.Preview)
			quizzes.POST("/join", attemptHandler.Join)
			quizzes.POST("/submit", attemptHandler.Submit)
			quizzes.GET("/joined", attemptHandler.ListJoined)

			joinedWithID := quizzes.Group("/joined/:joinId")
			joinedWithID.Use(middleware.ExtractUintParam("joinId", "joinID"))
			{
				joinedWithID.GET("", attemptHandler.GetJoinedDetail)
			}

			bySubject := quizzes.Group("/subject/:subjectId")
			bySubject.Use(middleware.ExtractUintParam("subjectId", "subjectID"))
			{
				bySubject.GET("", quizHandler.ListBySubject)
			}

			quizWithID := quizzes.Group("/:quizId")
			quizWithID.Use(middleware.ExtractUintParam("quizId", "quizID"))
			{
				quizWithID.GET("", quizHandler.GetQuiz)
				quizWithID.PUT("", quizHandler.UpdateQuiz)
				quizWithID.DELETE("", quizHandler.DeleteQuiz)
				quizWithID.GET("/attempts/export", quizHandler.ExportAttempts)
			}
		}
	}

	// HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ждем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
