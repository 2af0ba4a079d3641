package app

import (
	"context"
	"sync"

	"boardSync/configs"
	"boardSync/internal/handlers"
	"boardSync/internal/repositories"
	"boardSync/internal/servers/database"
	"boardSync/internal/servers/http"
	"boardSync/internal/services"

	"github.com/redis/go-redis/v9"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.initializeConfigs()
	app.initializeRedis()

	db := database.GetDB(app.configs)

	authRepo := repositories.NewAuthenticationRepository(db)
	authService := services.NewAuthenticationService(authRepo, app.configs)
	boardRepo := repositories.NewBoardRepository(db)
	boardService := services.NewBoardService(boardRepo)
	noteRepo := repositories.NewNoteRepository(db)
	noteService := services.NewNoteService(noteRepo)

	keepAliveService := services.NewKeepAliveService(app.configs)
	keepAliveService.Start()

	socketBoardHandler := handlers.NewSocketBoardHandler(
		app.redis,
		app.ctx,
		authService,
		boardService,
		noteService,
		app.configs.JwtKey(),
	)

	restHandler := handlers.NewRestHandler(
		authService,
		boardService,
		noteService,
		socketBoardHandler.Broadcaster(),
		app.configs,
	)

	http.NewHttpServer(
		app.ctx,
		app.configs,
		restHandler,
		socketBoardHandler,
	).Run()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr: app.configs.Viper.GetString("redis.addr"),
	})
}

func (app *App) initializeConfigs() {
	app.configs = configs.GetConfig()
}
