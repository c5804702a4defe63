package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port       string `envconfig:"PORT" default:"3001"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`
	LogFile    string `envconfig:"LOG_FILE"`

	// Sessions live in a local sqlite file so logins survive restarts.
	SessionDSN string        `envconfig:"SESSION_DB_DSN" default:"merchbase.db"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	// Optional pre-hashed secret; takes precedence over AdminPassword.
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	RowStoreURL     string `envconfig:"ROWSTORE_URL" default:"http://localhost:9090"`
	RowStoreToken   string `envconfig:"ROWSTORE_TOKEN"`
	ProductsTable   string `envconfig:"PRODUCTS_TABLE" default:"Products"`
	CategoriesTable string `envconfig:"CATEGORIES_TABLE" default:"Categories"`

	MediaAPIURL string `envconfig:"MEDIA_API_URL" default:"https://api.cloudinary.com"`
	MediaCloud  string `envconfig:"MEDIA_CLOUD_NAME"`
	MediaKey    string `envconfig:"MEDIA_API_KEY"`
	MediaSecret string `envconfig:"MEDIA_API_SECRET"`
	MediaFolder string `envconfig:"MEDIA_FOLDER" default:"admin-portal/products"`
}

func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("could not load .env file: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		logrus.Fatalf("failed to process configuration: %v", err)
	}

	logrus.Infof("[config] PORT=%s CORS_ORIGIN=%s SESSION_DB_DSN=%s ROWSTORE_URL=%s MEDIA_CLOUD_NAME=%s",
		cfg.Port, cfg.CORSOrigin, cfg.SessionDSN, cfg.RowStoreURL, cfg.MediaCloud)
	return cfg
}
