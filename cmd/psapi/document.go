package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	client "github.com/hsn0918/psapi-client"
)

// documentOptions holds the flags shared by document commands. Unlike image
// commands, all inputs and outputs belong to a single job.
type documentOptions struct {
	opts        *cliOptions
	inputs      []string
	outputs     []string
	optionsPath string

	needsInputs   bool
	needsOutputs  bool
	needsOptions  bool
	allowsOptions bool
}

func (o *documentOptions) addFlags(cmd *cobra.Command) {
	if o.needsInputs {
		cmd.Flags().StringArrayVarP(&o.inputs, "input", "i", nil, "Input href (repeatable)")
	}
	if o.needsOutputs {
		cmd.Flags().StringArrayVarP(&o.outputs, "output", "o", nil, "Output href (repeatable)")
	}
	if o.needsOptions || o.allowsOptions {
		cmd.Flags().StringVar(&o.optionsPath, "options", "", "JSON file with the operation options")
	}
}

func (o *documentOptions) Validate() error {
	var missing []string
	if o.needsInputs && len(o.inputs) == 0 {
		missing = append(missing, "--input")
	}
	if o.needsOutputs && len(o.outputs) == 0 {
		missing = append(missing, "--output")
	}
	if o.needsOptions && o.optionsPath == "" {
		missing = append(missing, "--options")
	}
	if len(missing) > 0 {
		return errors.New("missing required flags: " + strings.Join(missing, ", "))
	}
	return nil
}

// loadOptions decodes --options into v. It reports false when the flag is unset.
func (o *documentOptions) loadOptions(v any) (bool, error) {
	if o.optionsPath == "" {
		return false, nil
	}
	return true, readJSONFile(o.optionsPath, v)
}

type documentRunner func(ctx context.Context, cli client.Client, o *documentOptions) (*client.Job, error)

func newDocumentCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Photoshop document operations",
	}

	cmd.AddCommand(newDocumentSubCmd(opts, "create", "Create a new PSD from layers and render it",
		documentOptions{needsOutputs: true, needsOptions: true},
		func(ctx context.Context, cli client.Client, o *documentOptions) (*client.Job, error) {
			var docOpts client.DocumentOptions
			if _, err := o.loadOptions(&docOpts); err != nil {
				return nil, err
			}
			return cli.CreateDocument(ctx, o.outputs, &docOpts)
		}))

	cmd.AddCommand(newDocumentSubCmd(opts, "manifest", "Extract the layer manifest of a PSD",
		documentOptions{needsInputs: true, allowsOptions: true},
		func(ctx context.Context, cli client.Client, o *documentOptions) (*client.Job, error) {
			var manifestOpts client.ManifestOptions
			ok, err := o.loadOptions(&manifestOpts)
			if err != nil {
				return nil, err
			}
			if !ok {
				return cli.GetDocumentManifest(ctx, o.inputs, nil)
			}
			return cli.GetDocumentManifest(ctx, o.inputs, &manifestOpts)
		}))

	cmd.AddCommand(newDocumentSubCmd(opts, "modify", "Apply layer edits to a PSD and render it",
		documentOptions{needsInputs: true, needsOutputs: true, needsOptions: true},
		func(ctx context.Context, cli client.Client, o *documentOptions) (*client.Job, error) {
			var docOpts client.DocumentOptions
			if _, err := o.loadOptions(&docOpts); err != nil {
				return nil, err
			}
			return cli.ModifyDocument(ctx, o.inputs, o.outputs, &docOpts)
		}))

	cmd.AddCommand(newDocumentSubCmd(opts, "rendition", "Render a PSD or image to other formats",
		documentOptions{needsInputs: true, needsOutputs: true},
		func(ctx context.Context, cli client.Client, o *documentOptions) (*client.Job, error) {
			return cli.CreateRendition(ctx, o.inputs, o.outputs)
		}))

	cmd.AddCommand(newDocumentSubCmd(opts, "smartobject", "Replace smart objects in a PSD and render it",
		documentOptions{needsInputs: true, needsOutputs: true, needsOptions: true},
		func(ctx context.Context, cli client.Client, o *documentOptions) (*client.Job, error) {
			var docOpts client.DocumentOptions
			if _, err := o.loadOptions(&docOpts); err != nil {
				return nil, err
			}
			return cli.ReplaceSmartObject(ctx, o.inputs, o.outputs, &docOpts)
		}))

	cmd.AddCommand(newDocumentSubCmd(opts, "actions", "Play Photoshop actions on an image",
		documentOptions{needsInputs: true, needsOutputs: true, needsOptions: true},
		func(ctx context.Context, cli client.Client, o *documentOptions) (*client.Job, error) {
			var actionOpts client.PhotoshopActionsOptions
			if _, err := o.loadOptions(&actionOpts); err != nil {
				return nil, err
			}
			return cli.PlayPhotoshopActions(ctx, o.inputs, o.outputs, &actionOpts)
		}))

	return cmd
}

func newDocumentSubCmd(opts *cliOptions, use, short string, required documentOptions, run documentRunner) *cobra.Command {
	do := required
	do.opts = opts

	cmd := &cobra.Command{
		Use:               use,
		Short:             short,
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := do.Validate(); err != nil {
				return err
			}

			target := use
			if len(do.inputs) > 0 {
				target = do.inputs[0]
			}

			cli, err := buildClient(opts)
			if err != nil {
				return failWith(opts.failLogPath, "", target, err)
			}

			started := time.Now()
			job, err := run(cmd.Context(), cli, &do)
			if err != nil {
				return failWith(opts.failLogPath, "", target, err)
			}

			return reportJob(cmd, opts, target, started, job)
		},
	}

	do.addFlags(cmd)

	return cmd
}
