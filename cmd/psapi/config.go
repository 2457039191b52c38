package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"

	"github.com/hsn0918/psapi-client/storage"
)

const envPrefix = "psapi"

// envConfig is read from PSAPI_* variables. Flags given on the command line
// take precedence.
type envConfig struct {
	OrgID       string `envconfig:"ORG_ID"`
	APIKey      string `envconfig:"API_KEY"`
	AccessToken string `envconfig:"ACCESS_TOKEN"`
	BaseURL     string `envconfig:"BASE_URL"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3Region    string `envconfig:"S3_REGION"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3UseSSL    bool   `envconfig:"S3_USE_SSL" default:"true"`
}

func loadEnvConfig() (*envConfig, error) {
	cfg := new(envConfig)
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// applyEnv fills every option whose flag was not set explicitly.
func (o *cliOptions) applyEnv(flags *pflag.FlagSet, cfg *envConfig) {
	fill := func(name string, dst *string, value string) {
		if value == "" || flags.Changed(name) {
			return
		}
		*dst = value
	}

	fill("org-id", &o.orgID, cfg.OrgID)
	fill("api-key", &o.apiKey, cfg.APIKey)
	fill("access-token", &o.accessToken, cfg.AccessToken)
	fill("base-url", &o.baseURL, cfg.BaseURL)
	fill("log-level", &o.logLevel, cfg.LogLevel)

	o.s3 = storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	}
}
