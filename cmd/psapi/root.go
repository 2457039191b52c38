package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	client "github.com/hsn0918/psapi-client"
	"github.com/hsn0918/psapi-client/storage"
)

type cliOptions struct {
	orgID                  string
	apiKey                 string
	accessToken            string
	baseURL                string
	timeout                time.Duration
	processingTimeout      time.Duration
	pollInterval           time.Duration
	presignExpiry          time.Duration
	defaultAdobeCloudPaths bool
	failLogPath            string
	logLevel               string
	s3                     storage.S3Config

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "psapi",
		Short:         "Photoshop, Lightroom and Sensei API CLI helper",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEnvConfig()
			if err != nil {
				return err
			}
			opts.applyEnv(cmd.Flags(), cfg)
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.logLevel)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.orgID, "org-id", "", "IMS organization id (or set PSAPI_ORG_ID)")
	flags.StringVar(&opts.apiKey, "api-key", "", "API key (or set PSAPI_API_KEY)")
	flags.StringVar(&opts.accessToken, "access-token", "", "IMS access token (or set PSAPI_ACCESS_TOKEN)")
	flags.StringVar(&opts.baseURL, "base-url", client.DefaultBaseURL, "Base URL for the API (or set PSAPI_BASE_URL)")
	flags.DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "HTTP timeout for API requests")
	flags.DurationVar(&opts.processingTimeout, "processing-timeout", 0, "Timeout for a job to finish, 0 waits indefinitely")
	flags.DurationVar(&opts.pollInterval, "poll-interval", client.DefaultPollInterval, "Interval between job status polls")
	flags.DurationVar(&opts.presignExpiry, "presign-expiry", client.DefaultPresignExpiry, "Validity of presigned S3 URLs")
	flags.BoolVar(&opts.defaultAdobeCloudPaths, "default-adobe-cloud-paths", false, "Treat bare paths as Creative Cloud paths even when S3 is configured")
	flags.StringVar(&opts.failLogPath, "fail-log", "fail.log", "Path to write failed job logs")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug|info|warn|error (or set PSAPI_LOG_LEVEL)")

	cmd.AddCommand(newCutoutCmd(opts))
	cmd.AddCommand(newMaskCmd(opts))
	cmd.AddCommand(newStraightenCmd(opts))
	cmd.AddCommand(newAutoToneCmd(opts))
	cmd.AddCommand(newEditCmd(opts))
	cmd.AddCommand(newPresetCmd(opts))
	cmd.AddCommand(newDocumentCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newCompletionCmd())

	return cmd
}
