package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr           string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"*"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
	MigrationsPath  string        `yaml:"MIGRATIONS_PATH" env:"PG_MIGRATIONS_PATH" env-default:"./migrations"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"24h"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type RateConfig struct {
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"RATE_WINDOW_SIZE" env-default:"1m"`
	MaxRequests int64         `yaml:"MAX_REQUESTS" env:"RATE_MAX_REQUESTS" env-default:"10"`
}

type Stripe struct {
	APIKey        string `yaml:"STRIPE_API_KEY" env:"STRIPE_API_KEY" env-default:""`
	WebhookSecret string `yaml:"STRIPE_WEBHOOK_SECRET" env:"STRIPE_WEBHOOK_SECRET" env-default:""`
	Currency      string `yaml:"STRIPE_CURRENCY" env:"STRIPE_CURRENCY" env-default:"vnd"`
	SuccessURL    string `yaml:"STRIPE_SUCCESS_URL" env:"STRIPE_SUCCESS_URL" env-default:"fooddelivery://payment/success"`
	CancelURL     string `yaml:"STRIPE_CANCEL_URL" env:"STRIPE_CANCEL_URL" env-default:"fooddelivery://payment/cancel"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@fooddelivery.local"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Food Delivery"`
}

type Kafka struct {
	Brokers     []string `yaml:"BROKERS" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	OffersTopic string   `yaml:"OFFERS_TOPIC" env:"KAFKA_OFFERS_TOPIC" env-default:"delivery-offers"`
	GroupID     string   `yaml:"GROUP_ID" env:"KAFKA_GROUP_ID" env-default:"courier-dispatch"`
}

type Routing struct {
	BaseURL string        `yaml:"BASE_URL" env:"ROUTING_BASE_URL" env-default:"http://localhost:5000"`
	APIKey  string        `yaml:"API_KEY" env:"ROUTING_API_KEY" env-default:""`
	Timeout time.Duration `yaml:"TIMEOUT" env:"ROUTING_TIMEOUT" env-default:"10s"`
	// Mode is the travel mode requested for courier legs: driving or bicycling.
	Mode string `yaml:"MODE" env:"ROUTING_MODE" env-default:"driving"`
}

type CartSync struct {
	BaseURL      string        `yaml:"BASE_URL" env:"CART_SYNC_BASE_URL" env-default:"http://localhost:9000"`
	Timeout      time.Duration `yaml:"TIMEOUT" env:"CART_SYNC_TIMEOUT" env-default:"5s"`
	ProbeTimeout time.Duration `yaml:"PROBE_TIMEOUT" env:"CART_SYNC_PROBE_TIMEOUT" env-default:"2s"`
}

type Checkout struct {
	// VND has no minor unit, so whole numbers are exact.
	DefaultShippingFee int64 `yaml:"DEFAULT_SHIPPING_FEE" env:"CHECKOUT_DEFAULT_SHIPPING_FEE" env-default:"15000"`
}

type Tracking struct {
	StepInterval time.Duration `yaml:"STEP_INTERVAL" env:"TRACKING_STEP_INTERVAL" env-default:"30s"`
}

type Otel struct {
	ServiceName      string `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"food-delivery"`
	ExporterEndpoint string `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:""`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Cache        CacheConfig  `yaml:"cache"`
	Security     Security     `yaml:"security"`
	RateConfig   RateConfig   `yaml:"rate_limit"`
	Stripe       Stripe       `yaml:"stripe"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Kafka        Kafka        `yaml:"kafka"`
	Routing      Routing      `yaml:"routing"`
	CartSync     CartSync     `yaml:"cart_sync"`
	Checkout     Checkout     `yaml:"checkout"`
	Tracking     Tracking     `yaml:"tracking"`
	Otel         Otel         `yaml:"otel"`
}

func MustLoad() *Config {
	cfg, err := Load(configPathFromEnvOrFlag())
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}

// Load reads the YAML file at configPath and overlays environment variables.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func configPathFromEnvOrFlag() string {
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath
	}

	flags := flag.String("config", "", "gets the config flag value")

	flag.Parse()

	return *flags
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	if r.Username == "" && r.Password == "" {
		return fmt.Sprintf("redis://%s:%s/%d", r.Host, r.Port, r.DB)
	}

	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}
