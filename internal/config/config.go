// Package config loads service settings from the environment, an optional
// .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 服務設定
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisDB       int
	RedisPassword string
	WorkerCount   int
	HTTPAddr      string
	FormTTL       time.Duration
	TokenTTL      time.Duration
	LogLevel      string
	LogFormat     string
}

var loadDotEnv = func() error { return godotenv.Load() }

// Load 讀取設定；環境變數優先於設定檔。path 為空時只讀環境變數
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("讀取 .env 失敗: %w", err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("worker_count", "1")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("form_ttl", "30m")
	v.SetDefault("token_ttl", "1h")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	for _, key := range []string{"database_url", "redis_addr", "redis_db", "redis_password"} {
		// AutomaticEnv 只影響 Get，Unmarshal/IsSet 需要明確綁定
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("讀取設定檔失敗: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:   v.GetString("database_url"),
		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		HTTPAddr:      v.GetString("http_addr"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if v.GetString("redis_db") == "" {
		return nil, fmt.Errorf("環境變數 REDIS_DB 未設定")
	}
	redisDB, err := strconv.Atoi(v.GetString("redis_db"))
	if err != nil {
		return nil, fmt.Errorf("無效的 REDIS_DB: %v", err)
	}
	cfg.RedisDB = redisDB
	if cfg.RedisPassword == "" {
		return nil, fmt.Errorf("環境變數 REDIS_PASSWORD 未設定")
	}

	workers, err := strconv.Atoi(v.GetString("worker_count"))
	if err != nil || workers <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %q", v.GetString("worker_count"))
	}
	cfg.WorkerCount = workers

	if cfg.FormTTL, err = duration(v, "form_ttl"); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = duration(v, "token_ttl"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", strings.ToUpper(key), v.GetString(key))
	}
	return d, nil
}
