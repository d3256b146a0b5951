package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	TablePath      string
	TableWatch     bool
	ReloadDebounce time.Duration
	BatchWorkers   int
}

// Load читает окружение; .env в рабочем каталоге, если есть, подмешивается
// без перезаписи уже выставленных переменных.
func Load() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "32"))
	debounceMS, _ := strconv.Atoi(getenv("TABLE_RELOAD_DEBOUNCE_MS", "500"))
	workers, _ := strconv.Atoi(getenv("BATCH_WORKERS", "4"))
	watch, err := strconv.ParseBool(getenv("TABLE_WATCH", "true"))
	if err != nil {
		watch = true
	}
	if mb <= 0 {
		mb = 32
	}
	if workers <= 0 {
		workers = 1
	}
	if debounceMS < 0 {
		debounceMS = 0
	}
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Host:           getenv("HOST", "127.0.0.1"),
		Port:           port,
		AllowOrigins:   origins,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MaxUploadMB:    mb,
		LogFile:        getenv("LOG_FILE", "logs/psutier.log"),
		TablePath:      getenv("TABLE_PATH", "data/psu_lookup_map.json"),
		TableWatch:     watch,
		ReloadDebounce: time.Duration(debounceMS) * time.Millisecond,
		BatchWorkers:   workers,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// MaxUploadBytes — лимит тела запроса.
func (c Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) * 1024 * 1024 }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
