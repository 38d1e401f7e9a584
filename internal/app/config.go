package app

import (
	"strings"
	"time"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/utils"
)

type Config struct {
	ServiceName   string
	Environment   string
	Version       string
	Port          string
	JWTSecretKey  string
	AdminTokenTTL time.Duration
	AllowOrigins  []string
	TraitPoolFile string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	adminTokenTTLSeconds := utils.GetEnvAsInt("ADMIN_TOKEN_TTL", 3600, log)
	origins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "", log), ",")
	cleaned := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			cleaned = append(cleaned, o)
		}
	}
	return Config{
		ServiceName:   utils.GetEnv("SERVICE_NAME", "assessment-backend", log),
		Environment:   utils.GetEnv("ENVIRONMENT", "development", log),
		Version:       utils.GetEnv("SERVICE_VERSION", "dev", log),
		Port:          utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:  jwtSecretKey,
		AdminTokenTTL: time.Duration(adminTokenTTLSeconds) * time.Second,
		AllowOrigins:  cleaned,
		TraitPoolFile: utils.GetEnv("TRAIT_POOL_FILE", "", log),
	}
}
