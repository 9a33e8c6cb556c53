package postgres

import (
	"log"

	"github.com/LavaJover/shvark-refund-service/internal/config"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func MustInitDB(cfg *config.RefundConfig) *gorm.DB {
	dsn := cfg.RefundDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}
	return db
}

// AutoMigrate creates the schema straight from the models. Local and test
// databases use it; deployed databases go through the SQL migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
