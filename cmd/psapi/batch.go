package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	client "github.com/hsn0918/psapi-client"
)

const defaultConcurrency = 3

// batchTask is one job: an input and the outputs it renders to.
type batchTask struct {
	input   string
	outputs []string
}

type taskRunner func(ctx context.Context, cli client.Client, task batchTask) (*client.Job, error)

// pairTasks maps a single input to every output, or input N to output N when
// several inputs are given.
func pairTasks(inputs, outputs []string) ([]batchTask, error) {
	if len(inputs) == 0 {
		return nil, errors.New("flag --input is required")
	}
	if len(outputs) == 0 {
		return nil, errors.New("flag --output is required")
	}

	if len(inputs) == 1 {
		return []batchTask{{input: inputs[0], outputs: outputs}}, nil
	}

	if len(inputs) != len(outputs) {
		return nil, fmt.Errorf("got %d inputs and %d outputs, each input needs exactly one output", len(inputs), len(outputs))
	}

	tasks := make([]batchTask, len(inputs))
	for i := range inputs {
		tasks[i] = batchTask{input: inputs[i], outputs: []string{outputs[i]}}
	}
	return tasks, nil
}

func runBatch(ctx context.Context, cmd *cobra.Command, opts *cliOptions, cli client.Client, tasks []batchTask, concurrency int, run taskRunner) error {
	if len(tasks) == 1 {
		return runTask(ctx, cmd, opts, cli, tasks[0], run)
	}

	eg, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	var (
		errs []error
		mu   sync.Mutex
	)

	for _, task := range tasks {
		task := task
		eg.Go(func() error {
			if err := runTask(ctx, cmd, opts, cli, task, run); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if len(errs) > 0 {
		return fmt.Errorf("batch completed with %d errors, first: %w", len(errs), errs[0])
	}

	return nil
}

func runTask(ctx context.Context, cmd *cobra.Command, opts *cliOptions, cli client.Client, task batchTask, run taskRunner) error {
	started := time.Now()
	opts.logger.Info("starting job",
		zap.String("input", task.input),
		zap.Strings("outputs", task.outputs),
	)

	job, err := run(ctx, cli, task)
	if err != nil {
		return failWith(opts.failLogPath, "", task.input, err)
	}

	return reportJob(cmd, opts, task.input, started, job)
}
