package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kindredhq/kindred/internal/config"
	"github.com/kindredhq/kindred/internal/db"
	"github.com/kindredhq/kindred/internal/repository"
	"github.com/kindredhq/kindred/internal/service"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	Accounts       repository.AccountRepository
	AuthService    *service.AuthService
	AccountService *service.AccountService
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

	accounts := repository.NewAccountRepository(database)

	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry, cfg.BcryptCost)
	accountService := service.NewAccountService(accounts, authService)

	return &App{
		Cfg:            cfg,
		DB:             database,
		Accounts:       accounts,
		AuthService:    authService,
		AccountService: accountService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
