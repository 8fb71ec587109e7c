package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	"github.com/MontaQLabs/PolkArena-sub001/internal/config"
	"github.com/MontaQLabs/PolkArena-sub001/internal/database"
	"github.com/MontaQLabs/PolkArena-sub001/internal/handlers"
	"github.com/MontaQLabs/PolkArena-sub001/internal/middleware"
	"github.com/MontaQLabs/PolkArena-sub001/internal/realtime"
	"github.com/MontaQLabs/PolkArena-sub001/internal/services"

	_ "github.com/MontaQLabs/PolkArena-sub001/docs"
)

// @title           PolkArena Live API
// @version         1.0
// @description     Real-time buzzer and quiz rooms for the PolkArena event platform
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("database: %v", err)
	}

	hub := realtime.NewHub()

	identityService := services.NewIdentityService(cfg.JWTSecret)
	bankService := services.NewQuestionBankService(db)
	buzzerService := services.NewBuzzerService(hub)
	quizService := services.NewQuizService(hub, bankService)

	authHandler := handlers.NewAuthHandler(identityService)
	buzzerHandler := handlers.NewBuzzerHandler(buzzerService)
	quizHandler := handlers.NewQuizHandler(quizService)
	bankHandler := handlers.NewQuizBankHandler(bankService)

	buzzerSnapshot := func(roomID string) (any, error) { return buzzerService.GetRoom(roomID) }
	quizSnapshot := func(roomID string) (any, error) { return quizService.GetRoom(roomID) }

	buzzerStream := handlers.NewStreamHandler(hub, buzzerSnapshot)
	quizStream := handlers.NewStreamHandler(hub, quizSnapshot)
	buzzerWS := handlers.NewWSHandler(hub, identityService, buzzerSnapshot)
	quizWS := handlers.NewWSHandler(hub, identityService, quizSnapshot)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/buzzer", buzzerWS.Handle)
	r.GET("/ws/quiz", quizWS.Handle)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/guest", authHandler.GuestToken)

		buzzer := api.Group("/buzzer")
		{
			// SSE cannot carry an Authorization header from EventSource.
			buzzer.GET("/rooms/:id/events", buzzerStream.Stream)

			authed := buzzer.Group("")
			authed.Use(middleware.UserAuth(identityService))
			{
				authed.POST("/rooms", buzzerHandler.CreateRoom)
				authed.GET("/rooms", buzzerHandler.ListRooms)
				authed.POST("/rooms/join", buzzerHandler.Join)
				authed.GET("/rooms/:id", buzzerHandler.GetRoom)
				authed.DELETE("/rooms/:id", buzzerHandler.DeleteRoom)
				authed.POST("/rooms/:id/leave", buzzerHandler.Leave)
				authed.POST("/rooms/:id/start", buzzerHandler.Start)
				authed.POST("/rooms/:id/stop", buzzerHandler.Stop)
				authed.POST("/rooms/:id/reset", buzzerHandler.Reset)
				authed.POST("/rooms/:id/buzz", buzzerHandler.Buzz)
			}
		}

		quiz := api.Group("/quiz")
		{
			quiz.GET("/rooms/:id/events", quizStream.Stream)

			authed := quiz.Group("")
			authed.Use(middleware.UserAuth(identityService))
			{
				authed.POST("/rooms", quizHandler.CreateRoom)
				authed.GET("/rooms", quizHandler.ListRooms)
				authed.POST("/rooms/join", quizHandler.Join)
				authed.GET("/rooms/:id", quizHandler.GetRoom)
				authed.POST("/rooms/:id/leave", quizHandler.Leave)
				authed.POST("/rooms/:id/start", quizHandler.Start)
				authed.POST("/rooms/:id/finish", quizHandler.Finish)
				authed.POST("/rooms/:id/reset", quizHandler.Reset)
				authed.POST("/rooms/:id/questions/:index/start", quizHandler.StartQuestion)
				authed.POST("/rooms/:id/questions/:index/end", quizHandler.EndQuestion)
				authed.POST("/rooms/:id/answer", quizHandler.SubmitAnswer)
				authed.GET("/rooms/:id/leaderboard", quizHandler.Leaderboard)
			}
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.UserAuth(identityService))
		{
			quizzes.POST("", bankHandler.CreateQuiz)
			quizzes.GET("", bankHandler.ListQuizzes)
			quizzes.GET("/:id", bankHandler.GetQuiz)
			quizzes.POST("/:id/questions", bankHandler.AddQuestion)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.Infof("server starting on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
	logrus.Info("server stopped")
}
