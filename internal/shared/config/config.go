package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const featureEnvPrefix = "FEATURE_"

// Config holds application configuration.
type Config struct {
	Port             string
	CORSAllowOrigin  []string
	DatabaseURL      string
	RunMigrations    bool
	Env              string
	LogLevel         string
	FlagStore        string
	FlagsTable       string
	FlagsScope       string
	AWSRegion        string
	DynamoDBEndpoint string
	// FeatureOverrides holds FEATURE_* variables keyed by lower-cased flag name.
	FeatureOverrides map[string]bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:      dbURL,
		RunMigrations:    getBool("RUN_MIGRATIONS", env != "production"),
		Env:              env,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		FlagStore:        normalizeFlagStore(getEnv("FLAG_STORE", "")),
		FlagsTable:       getEnv("FLAGS_TABLE", "feature_flags"),
		FlagsScope:       getEnv("FLAGS_SCOPE", "global"),
		AWSRegion:        getEnv("AWS_REGION", ""),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),
		FeatureOverrides: featureOverrides(os.Environ()),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config: %s invalid bool %q, using %v", key, raw, def)
		return def
	}
	return val
}

// featureOverrides collects FEATURE_<NAME>=<bool> pairs from environ.
// FEATURE_CONTRACT_WORKFLOW=false becomes {"contract_workflow": false}.
func featureOverrides(environ []string) map[string]bool {
	out := make(map[string]bool)
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, featureEnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, featureEnvPrefix))
		if name == "" {
			continue
		}
		enabled, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			log.Printf("config: %s invalid bool %q, ignoring", key, val)
			continue
		}
		out[name] = enabled
	}
	return out
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

// normalizeFlagStore returns "" when unset so bootstrap can pick based on the database.
func normalizeFlagStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "dynamodb", "dynamo":
		return "dynamodb"
	case "memory":
		return "memory"
	default:
		return ""
	}
}
