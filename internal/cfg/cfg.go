package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http  *HTTPConfig
	Db    *PGDBCfg
	Cache *CacheCfg
	Async *AsyncCfg
	Seed  *SeedCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// CacheCfg задаёт политику для каждого пространства кэша.
type CacheCfg struct {
	Capacity uint64        // максимальное число записей в одном пространстве
	TTL      time.Duration // истечение записи после записи в кэш
}

// AsyncCfg задаёт размеры пула воркеров для асинхронных запросов.
type AsyncCfg struct {
	Workers   int
	QueueSize int
}

// SeedCfg управляет загрузкой демонстрационных данных при старте.
type SeedCfg struct {
	Enabled   bool
	Count     int
	BatchSize int
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cache, err := loadCacheCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	async, err := loadAsyncCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	seed, err := loadSeedCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:  http,
		Db:    db,
		Cache: cache,
		Async: async,
		Seed:  seed,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadCacheCfg(log logger.Logger) (*CacheCfg, error) {
	const (
		defaultCapacity = 10000
		defaultTTL      = 5 * time.Minute
	)

	capacity, err := parseIntEnv("CACHE_CAPACITY", defaultCapacity)
	if err != nil {
		log.Errorf(err, "invalid CACHE_CAPACITY")
		return nil, e.Wrap("CACHE_CAPACITY", err)
	}
	if capacity <= 0 {
		return nil, e.Wrap("CACHE_CAPACITY", e.ErrIncorrectEnvVariable)
	}

	ttl, err := parseDurationEnv("CACHE_TTL", defaultTTL)
	if err != nil {
		log.Errorf(err, "invalid CACHE_TTL")
		return nil, err
	}

	return &CacheCfg{
		Capacity: uint64(capacity),
		TTL:      ttl,
	}, nil
}

func loadAsyncCfg() (*AsyncCfg, error) {
	const (
		defaultWorkers   = 4
		defaultQueueSize = 64
	)

	workers, err := parseIntEnv("ASYNC_WORKERS", defaultWorkers)
	if err != nil {
		return nil, e.Wrap("ASYNC_WORKERS", err)
	}

	queueSize, err := parseIntEnv("ASYNC_QUEUE_SIZE", defaultQueueSize)
	if err != nil {
		return nil, e.Wrap("ASYNC_QUEUE_SIZE", err)
	}

	return &AsyncCfg{
		Workers:   workers,
		QueueSize: queueSize,
	}, nil
}

func loadSeedCfg(log logger.Logger) (*SeedCfg, error) {
	const (
		defaultEnabled   = false
		defaultCount     = 10000
		defaultBatchSize = 1000
	)

	enabled, err := strconv.ParseBool(getEnvOrDefault("SEED_DEMO_DATA", strconv.FormatBool(defaultEnabled)))
	if err != nil {
		log.Errorf(err, "invalid SEED_DEMO_DATA")
		return nil, err
	}

	count, err := parseIntEnv("SEED_COUNT", defaultCount)
	if err != nil {
		return nil, e.Wrap("SEED_COUNT", err)
	}

	batchSize, err := parseIntEnv("SEED_BATCH_SIZE", defaultBatchSize)
	if err != nil {
		return nil, e.Wrap("SEED_BATCH_SIZE", err)
	}

	return &SeedCfg{
		Enabled:   enabled,
		Count:     count,
		BatchSize: batchSize,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
