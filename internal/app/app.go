package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/platform/neo4jdb"
)

type App struct {
	Log      *logger.Logger
	Graph    *neo4jdb.Client
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("ENVIRONMENT")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	clients, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(clients.Graph, log)

	serviceset, err := wireServices(log, cfg, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)
	mw := wireMiddleware(log, serviceset)
	router := wireRouter(log, handlerset, mw)

	return &App{
		Log:      log,
		Graph:    clients.Graph,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Starting HTTP server", "addr", addr, "environment", a.Cfg.Environment)
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Graph != nil {
		if err := a.Graph.Close(context.Background()); err != nil {
			a.Log.Warn("closing graph driver", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
