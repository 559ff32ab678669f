package configs

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	SQLitePath  string
	MongoURI    string
	MongoDBName string
	SessionKey  string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		SQLitePath:  getenv("SQLITE_PATH", "library.db"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDBName: getenv("MONGO_DB_NAME", "library_logs"),
		SessionKey:  os.Getenv("SESSION_KEY"),
	}

	if cfg.SessionKey == "" {
		// Sessions won't survive a restart without a configured key.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("generate session key: %v", err)
		}
		cfg.SessionKey = hex.EncodeToString(buf)
		log.Println("SESSION_KEY not set, generated an ephemeral key")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
