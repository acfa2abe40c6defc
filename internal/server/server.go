package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"futuboard/internal/auth"
	"futuboard/internal/config"
	"futuboard/internal/handler"
	"futuboard/internal/middleware"
	"futuboard/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Migrations applied")

	// Setup Gin
	r := gin.Default()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour, cfg.TokenChecking)
	if !issuer.Enabled() {
		log.Println("⚠️  Token checking is disabled")
	}

	// Initialize repositories
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	swimlaneRepo := repository.NewSwimlaneRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize handlers
	boardHandler := handler.NewBoardHandler(boardRepo, issuer)
	columnHandler := handler.NewColumnHandler(columnRepo, issuer)
	ticketHandler := handler.NewTicketHandler(ticketRepo, columnRepo, boardRepo, issuer)
	swimlaneHandler := handler.NewSwimlaneHandler(swimlaneRepo, columnRepo, ticketRepo, issuer)
	userHandler := handler.NewUserHandler(userRepo, ticketRepo, issuer)

	// Bearer token check for board-scoped mutations. Reads, board creation
	// and the password check itself stay public; routes without a boardId
	// param resolve the owning board in their handlers.
	guarded := middleware.BoardTokenMiddleware(issuer)

	// Board routes
	r.GET("/boards", boardHandler.GetAll)
	r.POST("/boards", boardHandler.Create)
	r.GET("/boards/:boardId", guarded, boardHandler.GetByID)
	r.POST("/boards/:boardId", boardHandler.CheckPassword)
	r.PUT("/boards/:boardId", guarded, boardHandler.Update)
	r.DELETE("/boards/:boardId", guarded, boardHandler.Delete)
	r.PUT("/boards/:boardId/title", guarded, boardHandler.UpdateTitle)
	r.PUT("/boards/:boardId/notes", guarded, boardHandler.UpdateNotes)
	r.PUT("/boards/:boardId/password", guarded, boardHandler.UpdatePassword)
	r.PUT("/boards/:boardId/ticket-template", guarded, boardHandler.UpdateTicketTemplate)

	// Column routes
	r.GET("/boards/:boardId/columns", columnHandler.GetAll)
	r.POST("/boards/:boardId/columns", guarded, columnHandler.Create)
	r.PUT("/boards/:boardId/columns", guarded, columnHandler.Reorder)
	r.PUT("/columns/:columnId", columnHandler.Update)
	r.DELETE("/columns/:columnId", columnHandler.Delete)

	// Ticket routes
	r.GET("/columns/:columnId/tickets", ticketHandler.GetByColumn)
	r.POST("/columns/:columnId/tickets", ticketHandler.Create)
	r.PUT("/columns/:columnId/tickets", ticketHandler.Reorder)
	r.PUT("/tickets/:ticketId", ticketHandler.Update)
	r.DELETE("/tickets/:ticketId", ticketHandler.Delete)

	// Swimlane routes
	r.GET("/columns/:columnId/swimlanecolumns", swimlaneHandler.GetLanes)
	r.GET("/columns/:columnId/actions", swimlaneHandler.GetActions)
	r.POST("/swimlanecolumns/:swimlanecolumnId/tickets/:ticketId/actions", swimlaneHandler.CreateAction)
	r.PUT("/swimlanecolumns/:swimlanecolumnId/tickets/:ticketId/actions", swimlaneHandler.ReorderActions)
	r.PUT("/actions/:actionId", swimlaneHandler.UpdateAction)
	r.DELETE("/actions/:actionId", swimlaneHandler.DeleteAction)

	// User routes
	r.GET("/boards/:boardId/users", userHandler.GetBoardUsers)
	r.POST("/boards/:boardId/users", guarded, userHandler.AddBoardUser)
	r.GET("/tickets/:ticketId/users", userHandler.GetTicketUsers)
	r.POST("/tickets/:ticketId/users", userHandler.AddTicketUser)
	r.PUT("/tickets/:ticketId/users", userHandler.ReplaceTicketUsers)
	r.DELETE("/tickets/:ticketId/users", userHandler.RemoveTicketUser)
	r.DELETE("/users/:userId", userHandler.Delete)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
