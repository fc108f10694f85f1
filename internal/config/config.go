package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	JWTSecret            string
	GoogleAudience       string
	AllowOrigins         []string
	LogstashTCPAddr      string
	OverpassURL          string
	NominatimURL         string
	NominatimUserAgent   string
	SessionTTL           string
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinIOBucketProfile   string
	MinIOPublicURL       string
	FFmpegPath           string
	ProfileImageMaxBytes int64
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("PROFILE_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	return Config{
		Port:                 getenv("PORT", "8080"),
		DatabaseURL:          must("DATABASE_URL"),
		JWTSecret:            must("JWT_SECRET"),
		GoogleAudience:       getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:         splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:      getenv("LOGSTASH_TCP_ADDR", ""),
		OverpassURL:          getenv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		NominatimURL:         getenv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent:   getenv("NOMINATIM_USER_AGENT", "KidSpotsAPI/1.0 (contact@kidspots.example)"),
		SessionTTL:           getenv("SESSION_TTL", "24h"),
		MinIOEndpoint:        getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:       getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:       getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:          getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketProfile:   getenv("MINIO_BUCKET_PROFILE", "kidspots-profiles"),
		MinIOPublicURL:       getenv("MINIO_PUBLIC_URL", ""),
		FFmpegPath:           getenv("FFMPEG_PATH", ""),
		ProfileImageMaxBytes: imageMax,
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
