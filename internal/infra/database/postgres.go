package database

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/kebabcase/housing/internal/infra/database/models"
)

type PostgresOptions struct {
	MaxOpenConns  int
	MaxIdleConns  int
	SlowThreshold time.Duration
	Debug         bool
}

func NewPostgres(dsn string, opts PostgresOptions) (*gorm.DB, error) {
	if opts.SlowThreshold == 0 {
		opts.SlowThreshold = 300 * time.Millisecond
	}

	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             opts.SlowThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "postgres pool")
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}

	return db, nil
}

func MigratePostgres(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Building{},
		&models.HousingUnit{},
		&models.BuildingFeature{},
		&models.HousingUnitFeature{},
		&models.BuildingFeatureMapping{},
		&models.HousingUnitFeatureMapping{},
		&models.User{},
		&models.Client{},
		&models.Token{},
		&models.BuildingUserMapping{},
		&models.HousingUnitUserMapping{},
	)
}

// SeedClients makes sure every configured API client has a row.
func SeedClients(db *gorm.DB, names []string) error {
	for _, name := range names {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&models.Client{Name: name}).Error
		if err != nil {
			return errors.Wrapf(err, "seed client %s", name)
		}
	}
	return nil
}
