package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/radhe-vastra/storefront-backend/pkg/e"
	"github.com/radhe-vastra/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Backend — выбранная реализация хранилища продуктов.
type Backend string

const (
	BackendLocal  Backend = "local"  // bbolt-файл на устройстве
	BackendRemote Backend = "remote" // PostgreSQL + MinIO
)

type Config struct {
	Store   *StoreCfg
	Http    *HTTPConfig
	Db      *PGDBCfg
	Minio   *MinIOCfg
	Redis   *RedisCfg
	Admin   *AdminCfg
	Catalog *CatalogCfg
}

type StoreCfg struct {
	Backend  Backend
	BoltPath string // путь к файлу bbolt для локального бэкенда
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

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Название бакета с изображениями продуктов
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	PublicBaseURL     string // Базовый URL, по которому бакет доступен на чтение
	MaxObjectSize     int64  // Лимит размера загружаемого изображения
}

type RedisCfg struct {
	Enabled     bool
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ListTTL     time.Duration // TTL закэшированного списка продуктов
}

type AdminCfg struct {
	Passphrase string // общий секрет, открывающий админ-поверхность
}

type CatalogCfg struct {
	RefreshInterval time.Duration // фоновая перезагрузка каталога
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	store, err := loadStoreCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	admin, err := loadAdminCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalog, err := loadCatalogCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cfg := &Config{
		Store:   store,
		Http:    http,
		Admin:   admin,
		Catalog: catalog,
	}

	// Подсистемы удалённого бэкенда конфигурируются только когда он выбран
	if store.Backend == BackendRemote {
		db, err := loadPGDBCfg(log)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		minio, err := loadMinIOCfg(log)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		redis, err := loadRedisCfg(log)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		cfg.Db = db
		cfg.Minio = minio
		cfg.Redis = redis
	}

	return cfg, nil
}

func loadStoreCfg() (*StoreCfg, error) {
	const (
		defaultBackend  = string(BackendLocal)
		defaultBoltPath = "data/products.db"
	)

	backend := Backend(getEnvOrDefault("STORE_BACKEND", defaultBackend))
	if backend != BackendLocal && backend != BackendRemote {
		return nil, e.Wrap(fmt.Sprintf("STORE_BACKEND=%s", backend), e.ErrUnknownStoreBackend)
	}

	return &StoreCfg{
		Backend:  backend,
		BoltPath: getEnvOrDefault("BOLT_PATH", defaultBoltPath),
	}, nil
}

func loadAdminCfg() (*AdminCfg, error) {
	passphrase := getEnv("ADMIN_PASSPHRASE")
	if passphrase == "" {
		return nil, fmt.Errorf("ADMIN_PASSPHRASE environment variable is required")
	}

	return &AdminCfg{Passphrase: passphrase}, nil
}

func loadCatalogCfg(log logger.Logger) (*CatalogCfg, error) {
	const defaultRefreshInterval = 30 * time.Second

	refreshInterval, err := parseDurationEnv("CATALOG_REFRESH_INTERVAL", defaultRefreshInterval)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_REFRESH_INTERVAL")
		return nil, err
	}

	return &CatalogCfg{RefreshInterval: refreshInterval}, nil
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

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL        = false
		defaultEndpoint      = "minio:9000"
		defaultBucketName    = "product-images"
		defaultMaxObjectSize = 2 << 20 // 2 MiB
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	endpoint := getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint)

	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	publicBaseURL := getEnvOrDefault("MINIO_PUBLIC_URL", scheme+"://"+endpoint)

	return &MinIOCfg{
		MinioEndpoint:     endpoint,
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucketName),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		PublicBaseURL:     publicBaseURL,
		MaxObjectSize:     defaultMaxObjectSize,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr        = "localhost:6379"
		defaultDB          = 0
		defaultMaxRetries  = 3
		defaultDialTimeout = 5 * time.Second
		defaultTimeout     = 3 * time.Second
		defaultListTTL     = 3 * time.Minute
	)

	enabled, err := strconv.ParseBool(getEnvOrDefault("CACHE_ENABLED", "false"))
	if err != nil {
		log.Errorf(err, "invalid CACHE_ENABLED")
		return nil, err
	}

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	timeout, err := parseDurationEnv("REDIS_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_TIMEOUT")
		return nil, err
	}

	listTTL, err := parseDurationEnv("PRODUCT_LIST_TTL", defaultListTTL)
	if err != nil {
		log.Errorf(err, "invalid PRODUCT_LIST_TTL")
		return nil, err
	}

	return &RedisCfg{
		Enabled:     enabled,
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ListTTL:     listTTL,
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
