package config

import (
	"time"

	"main/utils"
)

type DatabaseConfig struct {
	URI             string
	DatabaseName    string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	RetryWrites     bool
}

type ServerConfig struct {
	Port            string
	CORSOrigin      string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "notes"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            utils.GetEnvAsString("PORT", "4000"),
		CORSOrigin:      utils.GetEnvAsString("CORS_ORIGIN", "http://localhost:5173"),
		MaxBodyBytes:    int64(utils.GetEnvAsInt("MAX_BODY_BYTES", 16<<20)),
		ShutdownTimeout: time.Duration(utils.GetEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}
