package client

import (
	"context"
	"fmt"
	"strings"
)

type lightroomRequest struct {
	Inputs  any      `json:"inputs"`
	Outputs []Output `json:"outputs"`
	Options any      `json:"options,omitempty"`
}

type lightroomSourceInputs struct {
	Source  *Input  `json:"source"`
	Presets []Input `json:"presets,omitempty"`
}

type xmpOptions struct {
	Xmp string `json:"xmp"`
}

// Straighten automatically straightens a photo.
func (c *client) Straighten(ctx context.Context, input, outputs any) (*Job, error) {
	body, err := c.lightroomBody(ctx, input, outputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OperationStraighten, err)
	}

	return c.run(ctx, OperationStraighten, EndpointAutoStraighten, body)
}

// AutoTone automatically tones a photo.
func (c *client) AutoTone(ctx context.Context, input, outputs any) (*Job, error) {
	body, err := c.lightroomBody(ctx, input, outputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OperationAutoTone, err)
	}

	return c.run(ctx, OperationAutoTone, EndpointAutoTone, body)
}

// EditPhoto applies a set of edit parameters to a photo.
func (c *client) EditPhoto(ctx context.Context, input, outputs any, opts EditPhotoOptions) (*Job, error) {
	if err := validateOptions(OperationEditPhoto, opts); err != nil {
		return nil, err
	}

	body, err := c.lightroomSourceBody(ctx, input, nil, outputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OperationEditPhoto, err)
	}
	body.Options = opts

	return c.run(ctx, OperationEditPhoto, EndpointEdit, body)
}

// ApplyPreset applies one or more Lightroom preset XMP files to a photo.
func (c *client) ApplyPreset(ctx context.Context, input, preset, outputs any) (*Job, error) {
	if preset == nil {
		return nil, fmt.Errorf("%s: preset: %w", OperationApplyPreset, ErrNoFileProvided)
	}

	body, err := c.lightroomSourceBody(ctx, input, preset, outputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OperationApplyPreset, err)
	}

	return c.run(ctx, OperationApplyPreset, EndpointPresets, body)
}

// ApplyPresetXmp applies the contents of a Lightroom preset XMP file to a photo.
func (c *client) ApplyPresetXmp(ctx context.Context, input, outputs any, xmp string) (*Job, error) {
	if strings.TrimSpace(xmp) == "" {
		return nil, fmt.Errorf("%s: %w", OperationApplyPresetXmp, ErrEmptyXMP)
	}

	body, err := c.lightroomSourceBody(ctx, input, nil, outputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OperationApplyPresetXmp, err)
	}
	body.Options = xmpOptions{Xmp: xmp}

	return c.run(ctx, OperationApplyPresetXmp, EndpointXmp, body)
}

// lightroomBody sends the single input as-is under inputs, as the auto
// endpoints expect an object rather than a list.
func (c *client) lightroomBody(ctx context.Context, input, outputs any) (*lightroomRequest, error) {
	in, err := c.resolver.ResolveInput(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("resolve input: %w", err)
	}

	outs, err := c.resolver.ResolveOutputs(ctx, outputs)
	if err != nil {
		return nil, fmt.Errorf("resolve outputs: %w", err)
	}

	return &lightroomRequest{Inputs: in, Outputs: outs}, nil
}

func (c *client) lightroomSourceBody(ctx context.Context, input, presets, outputs any) (*lightroomRequest, error) {
	source, err := c.resolver.ResolveInput(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("resolve input: %w", err)
	}

	inputs := lightroomSourceInputs{Source: source}
	if presets != nil {
		inputs.Presets, err = c.resolver.ResolveInputs(ctx, presets)
		if err != nil {
			return nil, fmt.Errorf("resolve presets: %w", err)
		}
	}

	outs, err := c.resolver.ResolveOutputs(ctx, outputs)
	if err != nil {
		return nil, fmt.Errorf("resolve outputs: %w", err)
	}

	return &lightroomRequest{Inputs: inputs, Outputs: outs}, nil
}
