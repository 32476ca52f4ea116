package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Dir             string
	BaseFile        string
	FilePrefix      string
	FileSuffix      string
	CommentPrefixes []string
	WorkerCount     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		Dir:             getEnv("PROPSYNC_DIR", "src/main/resources"),
		BaseFile:        getEnv("PROPSYNC_BASE_FILE", "messages_en_GB.properties"),
		FilePrefix:      getEnv("PROPSYNC_FILE_PREFIX", "messages_"),
		FileSuffix:      getEnv("PROPSYNC_FILE_SUFFIX", ".properties"),
		CommentPrefixes: getEnvList("PROPSYNC_COMMENT_PREFIXES", []string{"#"}),
		WorkerCount:     getEnvInt("PROPSYNC_WORKER_COUNT", 4),
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
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvList splits a comma separated variable. A variable that is set but
// empty yields an empty, non-nil list.
func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	list := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
