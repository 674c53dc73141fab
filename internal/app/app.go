package app

import (
	"net/http"

	"campus-events-go/internal/config"
	"campus-events-go/internal/db"
	eventdomain "campus-events-go/internal/domain/event"
	friendshipdomain "campus-events-go/internal/domain/friendship"
	momentdomain "campus-events-go/internal/domain/moment"
	userdomain "campus-events-go/internal/domain/user"
	"campus-events-go/internal/repository/inmemory"
	eventrepo "campus-events-go/internal/repository/postgres/event"
	friendshiprepo "campus-events-go/internal/repository/postgres/friendship"
	momentrepo "campus-events-go/internal/repository/postgres/moment"
	userrepo "campus-events-go/internal/repository/postgres/user"
	"campus-events-go/internal/transport/httpserver"
	"campus-events-go/internal/transport/httpserver/handler"
	"campus-events-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	events := eventdomain.NewService(
		eventrepo.NewPostgres(dbConn),
		inmemory.NewCategoriesCache(),
		cfg.Events.CategoryCacheTTL,
		cfg.Events.ParticipantPreview,
	)
	friendships := friendshipdomain.NewService(friendshiprepo.NewPostgres(dbConn))
	moments := momentdomain.NewService(momentrepo.NewPostgres(dbConn))

	log.Info("app: initializing router")
	handlers := handler.New(users, events, friendships, moments, log)
	router := httpserver.NewRouter(cfg, handlers)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
