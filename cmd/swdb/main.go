package main

import (
	"errors"
	"os"
	"time"

	v1 "swdb/api/v1"
	"swdb/internal/auth"
	"swdb/internal/cache"
	"swdb/internal/config"
	"swdb/internal/db"
	"swdb/internal/model"
	"swdb/internal/session"
	"swdb/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	log := logrus.WithField("component", "main")

	// 1. Load configuration (INI file when present, env otherwise)
	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	log.Info("Configuration loaded")

	// 2. Initialize MySQL
	if err := db.InitMySQL(cfg.MySQL.DSN); err != nil {
		log.WithError(err).Fatal("Failed to initialize MySQL")
	}
	defer db.Close()

	if cfg.Migrate {
		if err := db.Migrate(db.GetDB()); err != nil {
			log.WithError(err).Fatal("Failed to migrate database")
		}
	}

	// 3. Initialize Redis (session liveness store)
	if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.WithError(err).Fatal("Failed to initialize Redis")
	}
	defer cache.Close()

	// 4. Sessions and tokens
	auth.InitJWT(cfg.JWT.Secret)
	sessions := session.NewStore(cache.Client,
		time.Duration(cfg.JWT.ExpireMinutes)*time.Minute)

	if cfg.TestAuth.Enabled {
		if err := seedTestUser(cfg); err != nil {
			log.WithError(err).Fatal("Failed to seed test user")
		}
	}

	// 5. Live change feed
	if err := ws.InitServer(); err != nil {
		log.WithError(err).Fatal("Failed to initialize Socket.IO server")
	}
	defer ws.Close()

	// 6. HTTP server
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	v1.SetupRouter(r, db.GetDB(), cfg, sessions)

	log.WithField("addr", cfg.HTTPAddr).Info("Server starting")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

func loadConfig() (*config.Config, error) {
	iniPath := os.Getenv("SWDB_CONFIG")
	if iniPath == "" {
		if _, err := os.Stat("swdb.ini"); err == nil {
			iniPath = "swdb.ini"
		}
	}
	if iniPath != "" {
		return config.LoadFromINI(iniPath)
	}
	return config.Load()
}

// seedTestUser upserts the configured test-login account so the bypass path
// works against an empty database. The configured password is hashed here;
// only the hash ever reaches the users table.
func seedTestUser(cfg *config.Config) error {
	if cfg.TestAuth.Username == "" || cfg.TestAuth.Password == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.TestAuth.Password)
	if err != nil {
		return err
	}

	var user model.User
	err = db.GetDB().Where("username = ?", cfg.TestAuth.Username).First(&user).Error
	switch {
	case err == nil:
		user.PasswordHash = hash
		user.Status = model.UserStatusActive
		return db.GetDB().Save(&user).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.GetDB().Create(&model.User{
			Username:     cfg.TestAuth.Username,
			PasswordHash: hash,
			Status:       model.UserStatusActive,
		}).Error
	default:
		return err
	}
}
