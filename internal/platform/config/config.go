package config

import (
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"cnft/pkg/domain"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration
}

// Registry captures the deployment-time registry parameters.
type Registry struct {
	MintPriceWei    *big.Int
	MaxSupply       uint64
	AdminAddress    domain.Address
	AdminSecretHash string
}

// RedisConfig captures connection settings for the permission cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka captures event stream settings.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Config is everything main needs to wire the service.
type Config struct {
	Server      Server
	Registry    Registry
	DatabaseURL string
	Redis       RedisConfig
	Kafka       Kafka
}

// PermissionCacheTTL bounds staleness of cached view permission lookups.
var PermissionCacheTTL = 5 * time.Minute

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("CNFT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := time.Hour
	if raw := os.Getenv("CNFT_TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			tokenTTL = d
		}
	}

	mintPrice := domain.DefaultMintPrice()
	if raw := os.Getenv("CNFT_MINT_PRICE_WEI"); raw != "" {
		if p, ok := domain.ParseWei(raw); ok {
			mintPrice = p
		}
	}

	maxSupply := uint64(10_000)
	if raw := os.Getenv("CNFT_MAX_SUPPLY"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil && n > 0 {
			maxSupply = n
		}
	}

	admin, _ := domain.ParseAddress(os.Getenv("CNFT_ADMIN_ADDRESS"))

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "cnft.registry.events"
	}

	return Config{
		Server: Server{
			Addr:          addr,
			JWTSigningKey: jwtSigningKey,
			TokenTTL:      tokenTTL,
		},
		Registry: Registry{
			MintPriceWei:    mintPrice,
			MaxSupply:       maxSupply,
			AdminAddress:    admin,
			AdminSecretHash: os.Getenv("CNFT_ADMIN_SECRET_HASH"),
		},
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Brokers: brokers,
			Topic:   topic,
		},
	}
}
