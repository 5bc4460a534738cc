package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL         string
	DatabaseURLFallback string
	JWTSecret           string
	AIAPIKey            string
	EmbedModel          string
	EmbedDim            int
	GenModel            string
	RetrieveTopK        int
	AwsAccessKey        string
	AwsSecretKey        string
	AwsRegion           string
	BucketName          string
	StaticDir           string
	Port                string
}

// DefaultJWTSecret is only acceptable for local development. Any real
// deployment must set JWT_SECRET.
const DefaultJWTSecret = "change-me-in-production"

// LoadConfig loads the environment variables and returns config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		DatabaseURLFallback: getEnv("DATABASE_URL_FALLBACK", ""),
		JWTSecret:           getEnv("JWT_SECRET", DefaultJWTSecret),
		AIAPIKey:            getEnv("GEMINI_API_KEY", ""),
		EmbedModel:          getEnv("EMBED_MODEL", "text-embedding-004"),
		EmbedDim:            getEnvInt("EMBED_DIM", 768),
		GenModel:            getEnv("GEN_MODEL", "gemini-1.5-flash"),
		RetrieveTopK:        getEnvInt("RETRIEVE_TOP_K", 4),
		AwsAccessKey:        getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:        getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:           getEnv("AWS_REGION", "us-east-2"),
		BucketName:          getEnv("BUCKET_NAME", "askbee-corpus"),
		StaticDir:           getEnv("STATIC_DIR", "./web"),
		Port:                getEnv("PORT", "8080"),
	}

	if cfg.AIAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not set. Chat functionality will fail.")
	}
	if cfg.JWTSecret == DefaultJWTSecret {
		log.Println("WARNING: JWT_SECRET not set, using the development default.")
	}

	return cfg
}

// DatabaseURLs returns the configured connection strings in the order they
// should be tried. DATABASE_URL_FALLBACK covers deployments where the
// primary URL is not reachable from every network.
func (c *Config) DatabaseURLs() []string {
	var urls []string
	for _, u := range []string{c.DatabaseURL, c.DatabaseURLFallback} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
