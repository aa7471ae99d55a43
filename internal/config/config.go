package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type MongoConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	AccessSecret string
}

type ExternalServicesConfig struct {
	PathfinderURL string
}

type Config struct {
	Environment      string
	HTTP             HTTPConfig
	Mongo            MongoConfig
	LegacyMongo      MongoConfig
	Auth             AuthConfig
	ExternalServices ExternalServicesConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		LegacyMongo: MongoConfig{
			URI:      v.GetString("LEGACY_MONGO_URI"),
			Database: v.GetString("LEGACY_MONGO_DATABASE"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		ExternalServices: ExternalServicesConfig{
			PathfinderURL: v.GetString("PATHFINDER_URL"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "fleet"
	}
	if cfg.LegacyMongo.Database == "" {
		cfg.LegacyMongo.Database = "fleet_legacy"
	}
	if cfg.ExternalServices.PathfinderURL == "" {
		cfg.ExternalServices.PathfinderURL = "http://localhost:5000"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	return nil
}
