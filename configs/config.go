package configs

import (
	"log"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values. Connections are built in main and
// injected; config only carries the plain settings.
type Config struct {
	Port      string
	JWTSecret string
	JWTExpire time.Duration

	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	PostgresDB       string

	MongoURI string
	MongoDB  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

var (
	configInstance *Config
	once           sync.Once
)

// Load loads configuration from the .env file and the environment.
func Load() *Config {
	once.Do(func() {
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
		viper.AddConfigPath(".")

		viper.SetDefault("MARTIAL_PORT", "8080")
		viper.SetDefault("MARTIAL_JWT_SECRET", "secret")
		viper.SetDefault("MARTIAL_JWT_EXPIRE", "24h")
		viper.SetDefault("POSTGRES_USER", "postgres")
		viper.SetDefault("POSTGRES_PASSWORD", "password")
		viper.SetDefault("POSTGRES_HOST", "localhost")
		viper.SetDefault("POSTGRES_PORT", "5432")
		viper.SetDefault("POSTGRES_DB", "postgres")
		viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
		viper.SetDefault("MONGO_DB", "martialworld")
		viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
		viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
		viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
		viper.SetDefault("MINIO_BUCKET", "martial-media")
		viper.SetDefault("MINIO_USE_SSL", false)
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err != nil {
			log.Printf("Warning: Error reading .env file: %v", err)
			log.Printf("Using environment variables and defaults")
		}

		expire, err := time.ParseDuration(viper.GetString("MARTIAL_JWT_EXPIRE"))
		if err != nil {
			log.Fatal("Invalid MARTIAL_JWT_EXPIRE format")
		}

		configInstance = &Config{
			Port:             viper.GetString("MARTIAL_PORT"),
			JWTSecret:        viper.GetString("MARTIAL_JWT_SECRET"),
			JWTExpire:        expire,
			PostgresUser:     viper.GetString("POSTGRES_USER"),
			PostgresPassword: viper.GetString("POSTGRES_PASSWORD"),
			PostgresHost:     viper.GetString("POSTGRES_HOST"),
			PostgresPort:     viper.GetString("POSTGRES_PORT"),
			PostgresDB:       viper.GetString("POSTGRES_DB"),
			MongoURI:         viper.GetString("MONGO_URI"),
			MongoDB:          viper.GetString("MONGO_DB"),
			MinioEndpoint:    viper.GetString("MINIO_ENDPOINT"),
			MinioAccessKey:   viper.GetString("MINIO_ACCESS_KEY"),
			MinioSecretKey:   viper.GetString("MINIO_SECRET_KEY"),
			MinioBucket:      viper.GetString("MINIO_BUCKET"),
			MinioUseSSL:      viper.GetBool("MINIO_USE_SSL"),
		}
	})
	return configInstance
}
