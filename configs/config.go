package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// ConfigBool reads a boolean flag, falling back to def when the variable
// is unset or unparseable.
func ConfigBool(key string, def bool) bool {
	raw := Config(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid boolean for %s: %q, using default %v", key, raw, def)
		return def
	}
	return v
}
