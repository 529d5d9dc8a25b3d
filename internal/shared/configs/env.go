package configs

import "os"

var Envs = struct {
	LISTEN_ADDR     string
	FRONTEND_ORIGIN string
	GIN_MODE        string
	TOKEN_KEY       []byte
	LOG_LEVEL       string
}{
	LISTEN_ADDR:     getenv("LISTEN_ADDR", ":5000"),
	FRONTEND_ORIGIN: os.Getenv("FRONTEND_ORIGIN"),
	GIN_MODE:        os.Getenv("GIN_MODE"),
	TOKEN_KEY:       []byte(os.Getenv("TOKEN_KEY")),
	LOG_LEVEL:       getenv("LOG_LEVEL", "debug"),
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
