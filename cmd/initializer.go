package main

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/10-menachi/AirBnB-clone-v3/internal/config"
	"github.com/10-menachi/AirBnB-clone-v3/internal/handlers"
	"github.com/10-menachi/AirBnB-clone-v3/internal/repositories"
	"github.com/10-menachi/AirBnB-clone-v3/internal/services"
)

type application struct {
	errorLog       *log.Logger
	infoLog        *log.Logger
	prefix         string
	storage        *repositories.Storage
	indexHandler   *handlers.IndexHandler
	stateHandler   *handlers.StateHandler
	cityHandler    *handlers.CityHandler
	amenityHandler *handlers.AmenityHandler
	userHandler    *handlers.UserHandler
	placeHandler   *handlers.PlaceHandler
	reviewHandler  *handlers.ReviewHandler
}

func initializeApp(storage *repositories.Storage, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	logger := stdLogger{info: infoLog, err: errorLog}

	// Services
	statsService := &services.StatsService{Storage: storage}
	stateService := &services.StateService{Storage: storage}
	cityService := &services.CityService{Storage: storage}
	amenityService := &services.AmenityService{Storage: storage}
	userService := &services.UserService{Storage: storage}
	placeService := &services.PlaceService{Storage: storage}
	reviewService := &services.ReviewService{Storage: storage}

	// Handlers
	return &application{
		errorLog:       errorLog,
		infoLog:        infoLog,
		prefix:         cfg.Server.Prefix,
		storage:        storage,
		indexHandler:   &handlers.IndexHandler{Service: statsService, Log: logger},
		stateHandler:   &handlers.StateHandler{Service: stateService, Log: logger},
		cityHandler:    &handlers.CityHandler{Service: cityService, Log: logger},
		amenityHandler: &handlers.AmenityHandler{Service: amenityService, Log: logger},
		userHandler:    &handlers.UserHandler{Service: userService, Log: logger},
		placeHandler:   &handlers.PlaceHandler{Service: placeService, Log: logger},
		reviewHandler:  &handlers.ReviewHandler{Service: reviewService, Log: logger},
	}
}

// openStorage selects the backend named by HBNB_TYPE_STORAGE. With
// HBNB_ENV=test every persisted record is dropped first.
func openStorage(ctx context.Context, cfg config.Config, logger repositories.Logger) (*repositories.Storage, error) {
	var (
		storage *repositories.Storage
		err     error
	)
	switch cfg.Storage.Type {
	case config.StorageDB:
		storage, err = openDBStorage(ctx, cfg.Database, logger)
	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		storage, err = repositories.NewRedisStorage(ctx, rdb, cfg.Redis.Prefix, logger)
		if err != nil {
			_ = rdb.Close()
		}
	default:
		storage, err = repositories.NewFileStorage(ctx, cfg.Storage.FilePath, logger)
	}
	if err != nil {
		return nil, err
	}
	if cfg.IsTest() {
		if err := storage.Reset(ctx); err != nil {
			_ = storage.Close()
			return nil, err
		}
	}
	return storage, nil
}

func openDBStorage(ctx context.Context, cfg config.DatabaseConfig, logger repositories.Logger) (*repositories.Storage, error) {
	dialect, err := repositories.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn := cfg.DSN
	if dsn == "" {
		if dialect != repositories.DialectMySQL {
			return nil, fmt.Errorf("%s storage needs HBNB_DB_DSN", dialect)
		}
		dsn = repositories.MySQLDSN(cfg.User, cfg.Password, cfg.Host, cfg.Name)
	}
	db, err := repositories.OpenDB(dialect, dsn)
	if err != nil {
		return nil, err
	}
	storage, err := repositories.NewDBStorage(ctx, db, dialect, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return storage, nil
}
