package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// .env 仅用于本地开发；不存在时静默忽略
	_ = godotenv.Load()
}

// applyEnvOverrides 用环境变量覆盖配置文件的值（部署环境优先级最高）。
// 只覆盖显式设置了的变量。
func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Server.Name, "SERVER_NAME")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.HTTPPort, "SERVER_HTTP_PORT")

	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Database, "DB_NAME")

	setString(&cfg.Consul.Host, "CONSUL_HOST")
	setInt(&cfg.Consul.Port, "CONSUL_PORT")

	setString(&cfg.Jaeger.Endpoint, "JAEGER_ENDPOINT")

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.Issuer, "JWT_ISSUER")
	setString(&cfg.Auth.Audience, "JWT_AUDIENCE")
	setInt(&cfg.Auth.TokenTTLHours, "JWT_TTL_HOURS")

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	setString(&cfg.Log.Output, "LOG_OUTPUT")
	setString(&cfg.Log.Path, "LOG_PATH")
	setString(&cfg.Log.Backend, "LOG_BACKEND")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
