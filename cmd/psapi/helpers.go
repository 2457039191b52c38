package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	client "github.com/hsn0918/psapi-client"
	"github.com/hsn0918/psapi-client/storage"
)

func newLogger(w io.Writer, level string) *zap.Logger {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "severity",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), lvl)
	return zap.New(core, zap.AddStacktrace(zap.DPanicLevel))
}

func buildClient(opts *cliOptions) (client.Client, error) {
	options := []client.Option{
		client.WithBaseURL(opts.baseURL),
		client.WithTimeout(opts.timeout),
		client.WithProcessingTimeout(opts.processingTimeout),
		client.WithPollInterval(opts.pollInterval),
		client.WithPresignExpiry(opts.presignExpiry),
		client.WithDefaultAdobeCloudPaths(opts.defaultAdobeCloudPaths),
		client.WithLogger(opts.logger),
	}

	if opts.s3.Endpoint != "" {
		files, err := storage.NewS3Storage(opts.s3)
		if err != nil {
			return nil, err
		}
		options = append(options, client.WithFileStorage(files))
	}

	return client.NewClient(opts.orgID, opts.apiKey, opts.accessToken, options...)
}

// failWith appends err to the failure log and returns it.
func failWith(path, requestID, target string, err error) error {
	if requestID == "" {
		requestID = requestIDOf(err)
	}
	if logErr := logFailure(path, requestID, target, err); logErr != nil {
		return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
	}
	return err
}

func requestIDOf(err error) string {
	var sdkErr *client.Error
	if errors.As(err, &sdkErr) {
		return sdkErr.RequestID
	}
	return ""
}

// jobResult is printed for every finished job.
type jobResult struct {
	Target   string             `json:"target"`
	Elapsed  string             `json:"elapsed"`
	Job      *client.Job        `json:"job"`
	Failures []client.JobOutput `json:"failures,omitempty"`
}

// reportJob prints the job as JSON and turns failed outputs into an error.
func reportJob(cmd *cobra.Command, opts *cliOptions, target string, started time.Time, job *client.Job) error {
	result := jobResult{
		Target:   target,
		Elapsed:  time.Since(started).Round(time.Millisecond).String(),
		Job:      job,
		Failures: job.Failures(),
	}

	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if job.Succeeded() {
		opts.logger.Info("job succeeded",
			zap.String("target", target),
			zap.String("job-id", job.JobID()),
		)
		return nil
	}

	err := fmt.Errorf("job %s for %s finished with %d failed outputs", job.JobID(), target, len(result.Failures))
	return failWith(opts.failLogPath, job.JobID(), target, err)
}

var outputMu sync.Mutex

func printJSON(w io.Writer, data any) error {
	outputMu.Lock()
	defer outputMu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func writeJSON(path string, data any) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// readJSONFile decodes the file at path into v. Unknown fields are rejected
// so that typos in option files surface before a job is started.
func readJSONFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
