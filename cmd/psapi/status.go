package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	client "github.com/hsn0918/psapi-client"
)

func newStatusCmd(opts *cliOptions) *cobra.Command {
	var (
		wait   bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "status <status-url>",
		Short: "Show or wait for the status of a job started elsewhere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statusURL := args[0]

			cli, err := buildClient(opts)
			if err != nil {
				return failWith(opts.failLogPath, "", statusURL, err)
			}

			if !wait {
				raw, err := cli.GetJobStatus(cmd.Context(), statusURL)
				if err != nil {
					return failWith(opts.failLogPath, "", statusURL, err)
				}
				if output != "" {
					return writeJSON(output, raw)
				}
				return printJSON(cmd.OutOrStdout(), raw)
			}

			started := time.Now()
			job, err := trackStatusURL(cmd.Context(), cli, statusURL, opts)
			if err != nil {
				return failWith(opts.failLogPath, "", statusURL, err)
			}
			if output != "" {
				if err := writeJSON(output, job); err != nil {
					return err
				}
			}

			return reportJob(cmd, opts, statusURL, started, job)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Poll until every output of the job finished")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Optional path to save the status JSON")

	return cmd
}

func trackStatusURL(ctx context.Context, cli client.Client, statusURL string, opts *cliOptions) (*client.Job, error) {
	initiate, err := json.Marshal(map[string]any{
		"_links": map[string]any{
			"self": map[string]string{"href": statusURL},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode status link: %w", err)
	}

	job, err := cli.TrackJob(initiate)
	if err != nil {
		return nil, err
	}

	if opts.processingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.processingTimeout)
		defer cancel()
	}

	return job.PollUntilDone(ctx, opts.pollInterval)
}
