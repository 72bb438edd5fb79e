package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 服务端配置，全部来自环境变量（支持.env文件）
type Config struct {
	Port             string
	ClientURL        string
	AnswerSealSecret string
	StatsDSN         string
	SweepInterval    time.Duration
	RateLimitRPS     int
	RateLimitBurst   int
	LogLevel         string
}

// loadConfig 读取配置并填充默认值
func loadConfig() *Config {
	// .env不存在时静默忽略，线上环境直接注入环境变量
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("ANSWER_SEAL_SECRET", "acg-dev-secret")
	v.SetDefault("STATS_DB", "./data/stats.db")
	v.SetDefault("SWEEP_INTERVAL", "6m")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("LOG_LEVEL", "info")

	return &Config{
		Port:             v.GetString("PORT"),
		ClientURL:        v.GetString("CLIENT_URL"),
		AnswerSealSecret: v.GetString("ANSWER_SEAL_SECRET"),
		StatsDSN:         v.GetString("STATS_DB"),
		SweepInterval:    v.GetDuration("SWEEP_INTERVAL"),
		RateLimitRPS:     v.GetInt("RATE_LIMIT_RPS"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}
}
