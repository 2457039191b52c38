package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	client "github.com/hsn0918/psapi-client"
)

type imageOptions struct {
	opts         *cliOptions
	inputs       []string
	outputs      []string
	concurrency  int
	singleOutput bool
	tasks        []batchTask
}

func (o *imageOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&o.inputs, "input", "i", nil, "Input href: URL, storage path or Creative Cloud path (repeatable)")
	cmd.Flags().StringArrayVarP(&o.outputs, "output", "o", nil, "Output href (repeatable, one per input when several inputs are given)")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", defaultConcurrency, "Number of concurrent jobs when several inputs are given")
}

func (o *imageOptions) Complete() error {
	if o.concurrency <= 0 {
		o.concurrency = defaultConcurrency
	}

	tasks, err := pairTasks(o.inputs, o.outputs)
	if err != nil {
		return err
	}
	o.tasks = tasks

	return nil
}

func (o *imageOptions) Validate() error {
	if !o.singleOutput {
		return nil
	}
	for _, task := range o.tasks {
		if len(task.outputs) != 1 {
			return fmt.Errorf("%s accepts exactly one output per input", task.input)
		}
	}
	return nil
}

func (o *imageOptions) Run(cmd *cobra.Command, run taskRunner) error {
	cli, err := buildClient(o.opts)
	if err != nil {
		return failWith(o.opts.failLogPath, "", "", err)
	}

	return runBatch(cmd.Context(), cmd, o.opts, cli, o.tasks, o.concurrency, run)
}

// newImageCmd builds a batched single image command. prepare runs after flag
// parsing and before any job is started.
func newImageCmd(opts *cliOptions, use, short string, singleOutput bool, run taskRunner, prepare func() error) *cobra.Command {
	imgOpts := &imageOptions{
		opts:         opts,
		singleOutput: singleOutput,
	}

	cmd := &cobra.Command{
		Use:               use,
		Short:             short,
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := imgOpts.Complete(); err != nil {
				return failWith(opts.failLogPath, "", "", err)
			}
			if err := imgOpts.Validate(); err != nil {
				return err
			}
			if prepare != nil {
				if err := prepare(); err != nil {
					return err
				}
			}
			return imgOpts.Run(cmd, run)
		},
	}

	imgOpts.addFlags(cmd)

	return cmd
}

func newCutoutCmd(opts *cliOptions) *cobra.Command {
	return newImageCmd(opts, "cutout", "Remove the background around the main subject", true,
		func(ctx context.Context, cli client.Client, task batchTask) (*client.Job, error) {
			return cli.CreateCutout(ctx, task.input, task.outputs[0])
		}, nil)
}

func newMaskCmd(opts *cliOptions) *cobra.Command {
	return newImageCmd(opts, "mask", "Create a mask of the main subject", true,
		func(ctx context.Context, cli client.Client, task batchTask) (*client.Job, error) {
			return cli.CreateMask(ctx, task.input, task.outputs[0])
		}, nil)
}

func newStraightenCmd(opts *cliOptions) *cobra.Command {
	return newImageCmd(opts, "straighten", "Automatically straighten a photo", false,
		func(ctx context.Context, cli client.Client, task batchTask) (*client.Job, error) {
			return cli.Straighten(ctx, task.input, task.outputs)
		}, nil)
}

func newAutoToneCmd(opts *cliOptions) *cobra.Command {
	return newImageCmd(opts, "autotone", "Automatically tone a photo", false,
		func(ctx context.Context, cli client.Client, task batchTask) (*client.Job, error) {
			return cli.AutoTone(ctx, task.input, task.outputs)
		}, nil)
}

func newEditCmd(opts *cliOptions) *cobra.Command {
	var (
		optionsPath string
		settings    client.EditPhotoOptions
	)

	cmd := newImageCmd(opts, "edit", "Apply edit settings to a photo", false,
		func(ctx context.Context, cli client.Client, task batchTask) (*client.Job, error) {
			return cli.EditPhoto(ctx, task.input, task.outputs, settings)
		},
		func() error {
			if optionsPath == "" {
				return errors.New("flag --options is required")
			}
			return readJSONFile(optionsPath, &settings)
		})

	cmd.Flags().StringVar(&optionsPath, "options", "", "JSON file with the edit settings, e.g. {\"Exposure\": 1.2}")

	return cmd
}

func newPresetCmd(opts *cliOptions) *cobra.Command {
	var (
		presets []string
		xmpPath string
		xmp     string
	)

	cmd := newImageCmd(opts, "preset", "Apply Lightroom presets to a photo", false,
		func(ctx context.Context, cli client.Client, task batchTask) (*client.Job, error) {
			if xmp != "" {
				return cli.ApplyPresetXmp(ctx, task.input, task.outputs, xmp)
			}
			return cli.ApplyPreset(ctx, task.input, presets, task.outputs)
		},
		func() error {
			switch {
			case len(presets) > 0 && xmpPath != "":
				return errors.New("flags --preset and --xmp-file are mutually exclusive")
			case xmpPath != "":
				content, err := os.ReadFile(xmpPath)
				if err != nil {
					return fmt.Errorf("read xmp file: %w", err)
				}
				xmp = string(content)
				return nil
			case len(presets) > 0:
				return nil
			default:
				return errors.New("flag --preset or --xmp-file is required")
			}
		})

	cmd.Flags().StringArrayVar(&presets, "preset", nil, "Preset XMP href (repeatable)")
	cmd.Flags().StringVar(&xmpPath, "xmp-file", "", "Local preset XMP file whose content is sent inline")

	return cmd
}
