package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/goodman-rb/ai-content-studio/internal/model"
)

func InitDB(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbType {
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		// Pure-Go sqlite driver, no cgo.
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.PromptTemplate{},
		&model.SalonService{},
		&model.Discount{},
		&model.Setting{},
		&model.ScheduledPost{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
