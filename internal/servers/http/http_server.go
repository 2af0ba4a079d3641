package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"boardSync/configs"
	"boardSync/internal/handlers"

	"github.com/gin-gonic/gin"
)

var (
	httpServer *HttpServer
	once       sync.Once
)

type HttpServer struct {
	ctx           context.Context
	config        *configs.Config
	router        *gin.Engine
	restHandler   *handlers.RestHandler
	socketHandler *handlers.SocketBoardHandler
}

func NewHttpServer(
	ctx context.Context,
	config *configs.Config,
	restHandler *handlers.RestHandler,
	socketHandler *handlers.SocketBoardHandler,
) *HttpServer {
	once.Do(func() {
		httpServer = &HttpServer{
			ctx:           ctx,
			config:        config,
			restHandler:   restHandler,
			socketHandler: socketHandler,
		}
	})
	return httpServer
}

func (hs *HttpServer) Run() {
	hs.initializeGin()
	hs.setupRestfulRoutes()
	hs.setupWebSocketRoutes()

	hs.socketHandler.StartSocket()

	server := hs.startServer()

	// Wait for interrupt signal to gracefully shut down the server
	hs.socketHandler.WaitForShutdown(server)
}

func (hs *HttpServer) initializeGin() {
	hs.router = gin.Default()
}

func (hs *HttpServer) setupRestfulRoutes() {
	api := hs.router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", hs.restHandler.Register)
	auth.POST("/login", hs.restHandler.Login)
	auth.GET("/me", hs.restHandler.MustAuthenticateMiddleware(), hs.restHandler.Me)

	boards := api.Group("/boards", hs.restHandler.MustAuthenticateMiddleware())
	boards.GET("/my", hs.restHandler.GetMyBoards)
	boards.POST("", hs.restHandler.CreateBoard)
	boards.DELETE("/:boardId", hs.restHandler.DeleteBoard)
	boards.GET("/:boardId/notes", hs.restHandler.GetBoardNotes)
	boards.GET("/:boardId/members", hs.restHandler.GetBoardMembers)
	boards.POST("/:boardId/members", hs.restHandler.AddBoardMember)
	boards.DELETE("/:boardId/members/:userId", hs.restHandler.RemoveBoardMember)
}

func (hs *HttpServer) setupWebSocketRoutes() {
	hs.router.GET("/ws", hs.socketHandler.HandleSocketBoardRoute)
}

func (hs *HttpServer) startServer() *http.Server {
	addr := hs.config.ServerAddress()
	server := &http.Server{
		Addr:    addr,
		Handler: hs.router,
	}

	go func() {
		log.Printf("HTTP server started on %v", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	return server
}
