package database

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// C is the ambient connection used by timed maintenance tasks.
// Request handlers receive the handle explicitly at construction instead.
var C *gorm.DB

func NewGorm() (*gorm.DB, error) {
	dsn := viper.GetString("database.dsn")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: viper.GetString("database.prefix"),
		},
		Logger: logger.New(&log.Logger, logger.Config{
			Colorful: true,
			LogLevel: logger.Error,
		}),
	})
	if err != nil {
		return nil, err
	}

	C = db
	return db, nil
}
