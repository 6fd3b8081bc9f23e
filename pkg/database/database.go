package database

import (
	"fmt"
	"log"
	"time"

	"academy_backend/internal/config"
	"academy_backend/internal/model"
	"academy_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by this service, in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.LessonAttachment{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.SiteSetting{},
		&model.PageContent{},
	}
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case util.DatabasePostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	case util.DatabaseMySQL, "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// InitDB opens the connection and, when migrate is set, runs AutoMigrate.
func InitDB(cfg *config.DatabaseConfig, debug, migrate bool) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	return db, nil
}

// Migrate creates or updates the schema and seeds the site settings row.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.SiteSetting{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		settings := &model.SiteSetting{
			SiteName: "Academy",
			Tagline:  "Learning for everyone",
			NavLinks: datatypes.JSON(`[{"label":"Home","url":"/"},{"label":"About","url":"/about"},{"label":"Courses","url":"/courses"}]`),
		}
		if err := db.Create(settings).Error; err != nil {
			return err
		}
	}
	return nil
}
