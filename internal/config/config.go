package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultExcludedWorkloads 是状态汇总时跳过的平台自身工作负载。
var DefaultExcludedWorkloads = []string{"nginx-ingress-ingress-nginx-controller"}

type Config struct {
	HTTPPort          string
	KubeconfigPath    string
	DeployNamespace   string
	APIToken          string
	DatabaseURL       string
	LogLevel          string
	ExcludedWorkloads []string
	StatusConcurrency int
	PlatformTimeout   time.Duration
	PostgresConfPath  string
	DatastoreProfile  string
}

func Load() *Config {
	excluded := splitCSV(os.Getenv("EXCLUDED_WORKLOADS"))
	if excluded == nil {
		excluded = DefaultExcludedWorkloads
	}
	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		KubeconfigPath:    getEnv("KUBECONFIG", ""),
		DeployNamespace:   getEnv("DEPLOY_NAMESPACE", "default"),
		APIToken:          os.Getenv("API_TOKEN"),
		DatabaseURL:       lookupEnv("DATABASE_URL", "kaas.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ExcludedWorkloads: excluded,
		StatusConcurrency: getEnvInt("STATUS_CONCURRENCY", 4),
		PlatformTimeout:   getEnvDuration("PLATFORM_TIMEOUT", 10*time.Second),
		PostgresConfPath:  getEnv("POSTGRES_CONF_PATH", "postgresql.conf"),
		DatastoreProfile:  os.Getenv("DATASTORE_PROFILE"),
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// lookupEnv 与 getEnv 不同：变量显式设为空串时返回空串。
func lookupEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
