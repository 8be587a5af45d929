package db

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/techagentng/studyfocus/config"
	"github.com/techagentng/studyfocus/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

// NewGormDB wraps an already opened connection, skipping migrations.
func NewGormDB(conn *gorm.DB) *GormDB {
	return &GormDB{DB: conn}
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	log.WithFields(log.Fields{
		"host": c.PostgresHost,
		"port": c.PostgresPort,
		"db":   c.PostgresDB,
	}).Info("connecting to postgres")
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d TimeZone=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresTimeZone)

	gormConfig := &gorm.Config{}
	if !c.IsProd() {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Blacklist{},
		&models.Study{},
		&models.StudyMember{},
		&models.Application{},
		&models.Notification{},
		&models.Assignment{},
		&models.Announcement{},
	)
	if err != nil {
		return errors.Wrap(err, "migrations error")
	}
	return nil
}
