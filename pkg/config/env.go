package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by the HTTP service.
const (
	EnvAddr      = "STACKCHART_ADDR"
	EnvRedisAddr = "STACKCHART_REDIS_ADDR"
	EnvMongoURI  = "STACKCHART_MONGO_URI"
	EnvMongoDB   = "STACKCHART_MONGO_DB"
)

// Defaults for the HTTP service.
const (
	DefaultAddr    = ":8080"
	DefaultMongoDB = "stackchart"
)

// Service holds the HTTP service settings. Empty RedisAddr disables the
// shared cache; empty MongoURI keeps stored charts in memory.
type Service struct {
	Addr      string
	RedisAddr string
	MongoURI  string
	MongoDB   string
}

// LoadService reads the service settings from the environment after
// loading the given .env files. Missing files are skipped and variables
// already set in the environment win over file values.
func LoadService(envFiles ...string) (Service, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Service{}, err
		}
	}
	s := Service{
		Addr:      os.Getenv(EnvAddr),
		RedisAddr: os.Getenv(EnvRedisAddr),
		MongoURI:  os.Getenv(EnvMongoURI),
		MongoDB:   os.Getenv(EnvMongoDB),
	}
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.MongoDB == "" {
		s.MongoDB = DefaultMongoDB
	}
	return s, nil
}
