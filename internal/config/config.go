package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr   string
	OxiDBHost  string
	OxiDBPort  int
	PoolSize   int
	JWTSecret  string
	AdminEmail string
	AdminPass  string
	GelfAddr   string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	ZAPIBaseURL     string
	ZAPIClientToken string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	return &Config{
		HTTPAddr:   getEnv("PORTAL_ADDR", ":8080"),
		OxiDBHost:  getEnv("OXIDB_HOST", "127.0.0.1"),
		OxiDBPort:  getEnvInt("OXIDB_PORT", 4444),
		PoolSize:   getEnvInt("PORTAL_POOL_SIZE", 3),
		JWTSecret:  getEnv("PORTAL_JWT_SECRET", "docportal-dev-secret-change-me"),
		AdminEmail: getEnv("PORTAL_ADMIN_EMAIL", "admin@docportal.local"),
		AdminPass:  getEnv("PORTAL_ADMIN_PASS", "admin123"),
		GelfAddr:   getEnv("PORTAL_GELF_ADDR", ""),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET", "portal-documents"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "") == "true",

		ZAPIBaseURL:     getEnv("ZAPI_BASE_URL", ""),
		ZAPIClientToken: getEnv("ZAPI_CLIENT_TOKEN", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
