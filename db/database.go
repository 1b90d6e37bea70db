package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant-booking-server/config"
	"restaurant-booking-server/logging"
	"restaurant-booking-server/model"
)

// ErrNotFound is returned by DAOs when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

var db *gorm.DB
var testMode string

// InitDB opens the database named by cfg.URL (postgres:// or sqlite://) and
// migrates the schema.
func InitDB(cfg config.DatabaseConfig, testModeArg string) (*gorm.DB, error) {
	// save testMode
	testMode = testModeArg

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(cfg.URL, "postgres://"):
		dialector = postgres.Open(cfg.URL)
		logging.Info().Msg("Connecting to PostgreSQL database")
	case strings.HasPrefix(cfg.URL, "sqlite://"):
		dsn := strings.TrimPrefix(cfg.URL, "sqlite://")
		dialector = sqlite.Open(dsn)
		logging.Info().Str("path", dsn).Msg("Connecting to SQLite database")
	default:
		return nil, fmt.Errorf("invalid database url %q", cfg.URL)
	}

	database, err := Open(dialector)
	if err != nil {
		return nil, err
	}

	db = database
	return db, nil
}

// Open connects through dialector and migrates every model. Tests use it with an
// in-memory sqlite dialector.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	database, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = database.AutoMigrate(
		&model.User{},
		&model.ViewedRestaurant{},
		&model.Restaurant{},
		&model.Review{},
		&model.MenuItem{},
		&model.DishReview{},
		&model.DishReviewsAggregated{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return database, nil
}

func CloseDBConnection() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		logging.Error().Err(err).Msg("Failed closing connection")
		return
	}
	err = sqlDB.Close()
	if err != nil {
		logging.Error().Err(err).Msg("Failed closing connection")
	}
}

func ResetTestDatabase() error {
	// check correct test mode
	if testMode != "test" {
		return fmt.Errorf("wrong test mode")
	}

	tables := []string{
		"dish_reviews_aggregated", "dish_review", "menu_item", "review",
		"viewed_restaurant", "restaurant", `"user"`,
	}
	if db.Dialector.Name() == "postgres" {
		// "user" because it is a reserved word in PostgreSQL
		return db.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE").Error
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// notFound converts gorm's sentinel into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
