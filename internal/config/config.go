package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/creasty/defaults"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"mydoc/internal/logger"
	"mydoc/internal/service/s3"
)

// DefaultFile is read when no explicit config path is given and it exists.
const DefaultFile = "mydoc.yaml"

type Config struct {
	API     APIConfig     `mapstructure:"API"`
	Upload  UploadConfig  `mapstructure:"Upload"`
	Display DisplayConfig `mapstructure:"Display"`
	Storage s3.Config     `mapstructure:"Storage"`
	Log     logger.Config `mapstructure:"Log"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"BaseURL" default:"http://localhost:8080"`
	Timeout time.Duration `mapstructure:"Timeout" default:"30s"`
}

type UploadConfig struct {
	MaxFileSizeBytes int64 `mapstructure:"MaxFileSizeBytes" default:"10485760"`
}

type DisplayConfig struct {
	// Locale is a BCP 47 tag used to collate titles.
	Locale string `mapstructure:"Locale" default:"en"`
}

// NewConfig loads .env, the optional config file at path and the environment,
// then fills defaults and validates the result.
func NewConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	v.SetConfigFile(path)

	bindings := map[string][]string{
		"API.BaseURL":             {"MYDOC_API_URL", "API_URL"},
		"API.Timeout":             {"MYDOC_API_TIMEOUT"},
		"Upload.MaxFileSizeBytes": {"MYDOC_MAX_FILE_SIZE"},
		"Display.Locale":          {"MYDOC_LOCALE"},
		"Log.Level":               {"MYDOC_LOG_LEVEL"},
		"Log.JSON":                {"MYDOC_LOG_JSON"},
		"Storage.Endpoint":        {"MYDOC_S3_ENDPOINT"},
		"Storage.Region":          {"MYDOC_S3_REGION"},
		"Storage.AccessKeyID":     {"MYDOC_S3_ACCESS_KEY_ID"},
		"Storage.SecretAccessKey": {"MYDOC_S3_SECRET_ACCESS_KEY"},
		"Storage.UsePathStyle":    {"MYDOC_S3_PATH_STYLE"},
		"Storage.UploadTimeout":   {"MYDOC_UPLOAD_TIMEOUT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if _, err := os.Stat(path); err == nil || explicit {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.API),
		validation.Field(&c.Upload),
		validation.Field(&c.Display),
		validation.Field(&c.Storage),
	)
	if err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return validation.Errors{"Log": validation.Errors{"Level": err}}
	}
	return nil
}

func (c APIConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Millisecond)),
	)
}

func (c UploadConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MaxFileSizeBytes, validation.Min(int64(1))),
	)
}

func (c DisplayConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Locale, validation.Required),
	)
}
