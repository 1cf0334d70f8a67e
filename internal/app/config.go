package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gracefieldhq/celldesk-backend/internal/platform/envutil"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type Config struct {
	Addr            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	RedisAddr       string
}

// fileConfig mirrors Config for the optional YAML overlay. Every field is
// optional; only set fields override the environment.
type fileConfig struct {
	Addr               string `yaml:"addr"`
	JWTSecretKey       string `yaml:"jwt_secret_key"`
	AccessTokenTTLSec  int    `yaml:"access_token_ttl"`
	RefreshTokenTTLSec int    `yaml:"refresh_token_ttl"`
	RedisAddr          string `yaml:"redis_addr"`
}

// LoadConfig reads the environment first and then, when CONFIG_FILE points
// at a YAML file, overlays the values set there.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Addr:            envutil.GetEnv("ADDR", ":8080", log),
		JWTSecretKey:    envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  time.Duration(envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second,
		RefreshTokenTTL: time.Duration(envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)) * time.Second,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.JWTSecretKey != "" {
		cfg.JWTSecretKey = fc.JWTSecretKey
	}
	if fc.AccessTokenTTLSec > 0 {
		cfg.AccessTokenTTL = time.Duration(fc.AccessTokenTTLSec) * time.Second
	}
	if fc.RefreshTokenTTLSec > 0 {
		cfg.RefreshTokenTTL = time.Duration(fc.RefreshTokenTTLSec) * time.Second
	}
	if fc.RedisAddr != "" {
		cfg.RedisAddr = fc.RedisAddr
	}
	log.Info("Config loaded", "addr", cfg.Addr, "config_file", path)
	return cfg, nil
}
