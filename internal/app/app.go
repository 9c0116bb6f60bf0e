package app

import (
	"fmt"

	"github.com/beanmap/beanmap/internal/config"
	"github.com/beanmap/beanmap/internal/db"
	"github.com/beanmap/beanmap/internal/repository"
	"github.com/beanmap/beanmap/internal/service"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	Users          repository.UserRepository
	Cafes          repository.CafeRepository
	AuthService    *service.AuthService
	CafeService    *service.CafeService
	ContentService *service.ContentService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	cafeRepository := repository.NewCafeRepository(database)

	// Services
	authService := service.NewAuthService(
		userRepository,
		cfg.SessionSecret,
		cfg.SessionExpiry,
		cfg.IsProduction(),
	)
	cafeService := service.NewCafeService(cafeRepository)
	contentService := service.NewContentService(cfg.ContentPath)

	return &App{
		Cfg:            cfg,
		DB:             database,
		Users:          userRepository,
		Cafes:          cafeRepository,
		AuthService:    authService,
		CafeService:    cafeService,
		ContentService: contentService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
