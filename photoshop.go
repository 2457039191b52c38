package client

import (
	"context"
	"fmt"
)

type documentRequest struct {
	Inputs  []Input  `json:"inputs,omitempty"`
	Outputs []Output `json:"outputs,omitempty"`
	Options any      `json:"options,omitempty"`
}

// CreateDocument creates a new PSD, optionally with layers, and renders or saves it.
func (c *client) CreateDocument(ctx context.Context, outputs any, opts *DocumentOptions) (*Job, error) {
	if opts == nil {
		return nil, fmt.Errorf("%s: %w", OperationCreateDocument, ErrNilOptions)
	}

	resolvedOpts, err := c.documentOptions(ctx, OperationCreateDocument, opts)
	if err != nil {
		return nil, err
	}

	outs, err := c.resolver.ResolveOutputs(ctx, outputs)
	if err != nil {
		return nil, fmt.Errorf("%s: resolve outputs: %w", OperationCreateDocument, err)
	}

	return c.run(ctx, OperationCreateDocument, EndpointDocumentCreate, &documentRequest{
		Outputs: outs,
		Options: resolvedOpts,
	})
}

// GetDocumentManifest extracts the layer information of a PSD.
func (c *client) GetDocumentManifest(ctx context.Context, input any, opts *ManifestOptions) (*Job, error) {
	if opts != nil {
		if err := validateOptions(OperationGetDocumentManifest, opts); err != nil {
			return nil, err
		}
	}

	ins, err := c.resolver.ResolveInputs(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%s: resolve inputs: %w", OperationGetDocumentManifest, err)
	}

	body := &documentRequest{Inputs: ins}
	if opts != nil {
		body.Options = opts
	}

	return c.run(ctx, OperationGetDocumentManifest, EndpointDocumentManifest, body)
}

// ModifyDocument applies edits to a PSD and renders or saves the result.
func (c *client) ModifyDocument(ctx context.Context, input, outputs any, opts *DocumentOptions) (*Job, error) {
	return c.editDocument(ctx, OperationModifyDocument, EndpointDocumentOperations, input, outputs, opts)
}

// ReplaceSmartObject replaces embedded smart objects of a PSD and renders or saves the result.
func (c *client) ReplaceSmartObject(ctx context.Context, input, outputs any, opts *DocumentOptions) (*Job, error) {
	return c.editDocument(ctx, OperationReplaceSmartObject, EndpointSmartObject, input, outputs, opts)
}

// CreateRendition renders a jpeg, png, psd or tiff input to the requested outputs.
func (c *client) CreateRendition(ctx context.Context, input, outputs any) (*Job, error) {
	body, err := c.documentFiles(ctx, input, outputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OperationCreateRendition, err)
	}

	return c.run(ctx, OperationCreateRendition, EndpointRenditionCreate, body)
}

// PlayPhotoshopActions plays Photoshop actions on an image and renders or saves the result.
func (c *client) PlayPhotoshopActions(ctx context.Context, input, outputs any, opts *PhotoshopActionsOptions) (*Job, error) {
	if opts == nil {
		return nil, fmt.Errorf("%s: %w", OperationPlayPhotoshopActions, ErrNilOptions)
	}

	body, err := c.documentFiles(ctx, input, outputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OperationPlayPhotoshopActions, err)
	}

	resolvedOpts, err := c.resolver.ResolvePhotoshopActionsOptions(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OperationPlayPhotoshopActions, err)
	}
	body.Options = resolvedOpts

	return c.run(ctx, OperationPlayPhotoshopActions, EndpointPhotoshopActions, body)
}

func (c *client) editDocument(ctx context.Context, operation Operation, endpoint string, input, outputs any, opts *DocumentOptions) (*Job, error) {
	if opts == nil {
		return nil, fmt.Errorf("%s: %w", operation, ErrNilOptions)
	}

	resolvedOpts, err := c.documentOptions(ctx, operation, opts)
	if err != nil {
		return nil, err
	}

	body, err := c.documentFiles(ctx, input, outputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	body.Options = resolvedOpts

	return c.run(ctx, operation, endpoint, body)
}

func (c *client) documentOptions(ctx context.Context, operation Operation, opts *DocumentOptions) (*DocumentOptions, error) {
	if err := validateOptions(operation, opts); err != nil {
		return nil, err
	}

	resolved, err := c.resolver.ResolveDocumentOptions(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return resolved, nil
}

func (c *client) documentFiles(ctx context.Context, input, outputs any) (*documentRequest, error) {
	ins, err := c.resolver.ResolveInputs(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("resolve inputs: %w", err)
	}

	outs, err := c.resolver.ResolveOutputs(ctx, outputs)
	if err != nil {
		return nil, fmt.Errorf("resolve outputs: %w", err)
	}

	return &documentRequest{Inputs: ins, Outputs: outs}, nil
}
