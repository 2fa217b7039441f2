package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	Service    ServiceConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	OTP        OTPConfig
	SMS        SMSConfig
	GCP        GCPConfig
	PubSub     PubSubConfig
	Eventing   EventingConfig
	Outbox     OutboxConfig
	Migrations MigrationsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MEDIPAY_APP_ENV" required:"true"`
	Port         string `envconfig:"MEDIPAY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MEDIPAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEDIPAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"MEDIPAY_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"MEDIPAY_DB_DSN"`
	Driver string `envconfig:"MEDIPAY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MEDIPAY_DB_HOST"`
	LegacyPort     int    `envconfig:"MEDIPAY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MEDIPAY_DB_USER"`
	LegacyPassword string `envconfig:"MEDIPAY_DB_PASSWORD"`
	LegacyName     string `envconfig:"MEDIPAY_DB_NAME"`
	LegacySSLMode  string `envconfig:"MEDIPAY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MEDIPAY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MEDIPAY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MEDIPAY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MEDIPAY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MEDIPAY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MEDIPAY_REDIS_ADDR"`
	Password     string        `envconfig:"MEDIPAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEDIPAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEDIPAY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEDIPAY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEDIPAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEDIPAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEDIPAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MEDIPAY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MEDIPAY_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MEDIPAY_JWT_EXPIRATION_MINUTES" default:"720"`
}

// OTPConfig governs the collection attempt lifecycle. Expiry and the verify
// attempt cap default to off to match the shipped dashboard behavior; the
// attempt TTL only bounds how long an abandoned attempt lingers in Redis.
type OTPConfig struct {
	AttemptTTL        time.Duration `envconfig:"MEDIPAY_OTP_ATTEMPT_TTL" default:"30m"`
	ExpiryWindow      time.Duration `envconfig:"MEDIPAY_OTP_EXPIRY_WINDOW" default:"0"`
	MaxVerifyAttempts int           `envconfig:"MEDIPAY_OTP_MAX_VERIFY_ATTEMPTS" default:"0"`
}

type SMSConfig struct {
	APIKey      string        `envconfig:"MEDIPAY_SMS_API_KEY"`
	Endpoint    string        `envconfig:"MEDIPAY_SMS_ENDPOINT" default:"https://www.fast2sms.com/dev/bulkV2"`
	SendTimeout time.Duration `envconfig:"MEDIPAY_SMS_SEND_TIMEOUT" default:"10s"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"MEDIPAY_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"MEDIPAY_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"MEDIPAY_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	PaymentsTopic        string `envconfig:"MEDIPAY_PUBSUB_PAYMENTS_TOPIC" default:"mp-payment-events"`
	PaymentsSubscription string `envconfig:"MEDIPAY_PUBSUB_PAYMENTS_SUBSCRIPTION" required:"true"`
}

type EventingConfig struct {
	OutboxIdempotencyTTL time.Duration `envconfig:"MEDIPAY_EVENTING_IDEMPOTENCY_TTL" default:"720h"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"MEDIPAY_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"MEDIPAY_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"MEDIPAY_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type MigrationsConfig struct {
	AutoMigrate bool `envconfig:"MEDIPAY_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
