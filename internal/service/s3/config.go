package s3

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config describes access to the object store behind document storage URLs.
// Credentials are optional: without them downloads go through plain HTTP.
type Config struct {
	Endpoint        string        `mapstructure:"Endpoint"`
	Region          string        `mapstructure:"Region" default:"us-east-1"`
	AccessKeyID     string        `mapstructure:"AccessKeyID"`
	SecretAccessKey string        `mapstructure:"SecretAccessKey"`
	UsePathStyle    bool          `mapstructure:"UsePathStyle"`
	UploadTimeout   time.Duration `mapstructure:"UploadTimeout" default:"10m"`
}

func (c Config) HasCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Endpoint, is.URL),
		validation.Field(&c.Region, validation.Required),
		validation.Field(&c.SecretAccessKey, validation.When(c.AccessKeyID != "", validation.Required)),
		validation.Field(&c.UploadTimeout, validation.Min(time.Second)),
	)
}
