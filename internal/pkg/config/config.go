package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, thresholds, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	CSRF     CSRFConfig
	Upload   UploadConfig
	Form     FormConfig
	External ExternalAPIConfig
	Breaker  BreakerConfig
}

type ServerConfig struct {
	Port    string `envconfig:"PORT" required:"true"`
	BaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-API-Key,X-CSRF-Token,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret        string        `envconfig:"JWT_SECRET" required:"true"`
	TokenDuration time.Duration `envconfig:"JWT_TOKEN_DURATION" default:"24h"`
	// Verification endpoint of the external identity provider used for
	// operator SSO. The provider is a black box: we send it a token, it
	// returns a verified email.
	IdentityVerifyURL string `envconfig:"IDENTITY_VERIFY_URL" default:""`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAMESITE" default:"Lax"`
}

type CSRFConfig struct {
	Enabled bool `envconfig:"CSRF_ENABLED" default:"true"`
}

type UploadConfig struct {
	Dir         string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	MaxFileSize int64  `envconfig:"MAX_FILE_SIZE" default:"10485760"` // 10MB
}

type FormConfig struct {
	ExpirationHours int `envconfig:"FORM_EXPIRATION_HOURS" default:"24"`
}

type ExternalAPIConfig struct {
	BaseURL        string        `envconfig:"ORDER_API_URL" required:"true"`
	APIKey         string        `envconfig:"ORDER_API_KEY" required:"true"`
	Timeout        time.Duration `envconfig:"ORDER_API_TIMEOUT" default:"30s"`
	RetryAttempts  int           `envconfig:"ORDER_API_RETRY_ATTEMPTS" default:"3"`
	OrganizationID int           `envconfig:"ORDER_API_ORGANIZATION_ID" default:"305"`
}

type BreakerConfig struct {
	FailureThreshold int           `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"5"`
	RecoveryTimeout  time.Duration `envconfig:"BREAKER_RECOVERY_TIMEOUT" default:"30s"`
	HalfOpenMaxCalls int           `envconfig:"BREAKER_HALF_OPEN_MAX_CALLS" default:"3"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:    "8889", // Test port
			BaseURL: "http://localhost:8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-CSRF-Token", "Idempotency-Key"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:        "test-secret",
			TokenDuration: time.Hour,
		},
		CSRF: CSRFConfig{Enabled: false},
		Upload: UploadConfig{
			Dir:         "./uploads-test",
			MaxFileSize: 10 << 20,
		},
		Form: FormConfig{ExpirationHours: 24},
		External: ExternalAPIConfig{
			BaseURL:        "http://localhost:9999",
			APIKey:         "test-api-key",
			Timeout:        2 * time.Second,
			RetryAttempts:  1,
			OrganizationID: 305,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			RecoveryTimeout:  30 * time.Second,
			HalfOpenMaxCalls: 3,
		},
	}
}
