package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
	"github.com/sushihentaime/inkpost/internal/uploadservice"
	"github.com/sushihentaime/inkpost/internal/userservice"
)

type Config struct {
	Port           int      `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`

	DBHost         string        `mapstructure:"POSTGRES_HOST"`
	DBPort         string        `mapstructure:"POSTGRES_PORT"`
	DBUser         string        `mapstructure:"POSTGRES_USER"`
	DBPassword     string        `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string        `mapstructure:"POSTGRES_DB"`
	DBMaxOpenConns int           `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"POSTGRES_MAX_IDLE_CONNS"`
	DBMaxIdleTime  time.Duration `mapstructure:"POSTGRES_MAX_IDLE_TIME"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`

	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	AccessTokenTTL    time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	DefaultProfileImg string        `mapstructure:"DEFAULT_PROFILE_IMG"`
	LatestBlogsTTL    time.Duration `mapstructure:"LATEST_BLOGS_TTL"`

	MailHost       string  `mapstructure:"MAIL_HOST"`
	MailPort       int     `mapstructure:"MAIL_PORT"`
	MailUser       string  `mapstructure:"MAIL_USER"`
	MailPassword   string  `mapstructure:"MAIL_PASSWORD"`
	MailSender     string  `mapstructure:"MAIL_SENDER"`
	MailRatePerSec float64 `mapstructure:"MAIL_RATE_PER_SEC"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	S3Bucket           string        `mapstructure:"S3_BUCKET"`
	S3Region           string        `mapstructure:"S3_REGION"`
	AWSAccessKeyID     string        `mapstructure:"AWS_ACCESS_KEY"`
	AWSSecretAccessKey string        `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	UploadURLTTL       time.Duration `mapstructure:"UPLOAD_URL_TTL"`
}

var configDefaults = map[string]any{
	"PORT":                    3000,
	"ENVIRONMENT":             "development",
	"VERSION":                 "1.0.0",
	"TRUSTED_ORIGINS":         "",
	"TLS_CERT_FILE":           "",
	"TLS_KEY_FILE":            "",
	"POSTGRES_HOST":           "localhost",
	"POSTGRES_PORT":           "5432",
	"POSTGRES_USER":           "",
	"POSTGRES_PASSWORD":       "",
	"POSTGRES_DB":             "",
	"POSTGRES_MAX_OPEN_CONNS": 10,
	"POSTGRES_MAX_IDLE_CONNS": 5,
	"POSTGRES_MAX_IDLE_TIME":  "15m",
	"MIGRATIONS_PATH":         "",
	"JWT_SECRET":              "",
	"ACCESS_TOKEN_TTL":        userservice.AccessTokenTime.String(),
	"DEFAULT_PROFILE_IMG":     "",
	"LATEST_BLOGS_TTL":        "30s",
	"MAIL_HOST":               "",
	"MAIL_PORT":               587,
	"MAIL_USER":               "",
	"MAIL_PASSWORD":           "",
	"MAIL_SENDER":             "",
	"MAIL_RATE_PER_SEC":       2,
	"RABBITMQ_HOST":           "localhost",
	"RABBITMQ_PORT":           "5672",
	"RABBITMQ_USER":           "guest",
	"RABBITMQ_PASSWORD":       "guest",
	"S3_BUCKET":               "",
	"S3_REGION":               "us-east-1",
	"AWS_ACCESS_KEY":          "",
	"AWS_SECRET_ACCESS_KEY":   "",
	"UPLOAD_URL_TTL":          uploadservice.DefaultURLExpiry.String(),
}

// loadConfig reads the .env file at path. Environment variables override the
// file, and a missing file leaves the environment and defaults in charge.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	if c.Environment == "production" && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set in %s", c.Environment)
	}

	return nil
}

func (c *Config) rabbitURI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.MQUser, c.MQPassword, c.MQHost, c.MQPort)
}
