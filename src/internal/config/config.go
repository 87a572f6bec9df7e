package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=bank_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultChannelID = "LedgerAdmin"
const defaultSettlementCron = "0 0 * * *"
const defaultExpiryCron = "0 1 * * *"
const defaultJWTIssuer = "bank-ledger"

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	DatabaseDSN    string
	MigrationsDir  string
	Store          string
	HTTPAddr       string
	ChannelID      string
	ChannelKeyHash string
	JWTSecret      string
	JWTIssuer      string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	DBMaxOpenConns int
	DBMaxIdleConns int
	SettlementCron string
	ExpiryCron     string
	LogLevel       string
}

// Load reads the process environment, after merging an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}

	maxOpen, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "30"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	maxIdle, err := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "20"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}

	store := strings.ToLower(getEnv("STORE", StorePostgres))
	if store != StorePostgres && store != StoreMemory {
		return Config{}, fmt.Errorf("unsupported STORE %q", store)
	}

	return Config{
		DatabaseDSN:    normalizeConnectionString(getEnv("DATABASE_DSN", defaultConnectionString)),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", filepath.Join("src", "migrations")),
		Store:          store,
		HTTPAddr:       getEnv("HTTP_ADDR", defaultHTTPAddr),
		ChannelID:      getEnv("CHANNEL_ID", defaultChannelID),
		ChannelKeyHash: getEnv("CHANNEL_KEY_HASH", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTIssuer:      getEnv("JWT_ISSUER", defaultJWTIssuer),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        redisDB,
		DBMaxOpenConns: maxOpen,
		DBMaxIdleConns: maxIdle,
		SettlementCron: getEnv("SETTLEMENT_CRON", defaultSettlementCron),
		ExpiryCron:     getEnv("EXPIRY_CRON", defaultExpiryCron),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
