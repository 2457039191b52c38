package client

import (
	"context"
	"fmt"
)

type singleFileRequest struct {
	Input  *Input  `json:"input"`
	Output *Output `json:"output"`
}

// CreateCutout creates a mask of the main subject and applies it to the input.
func (c *client) CreateCutout(ctx context.Context, input, output any) (*Job, error) {
	body, err := c.singleFileBody(ctx, input, output)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OperationCreateCutout, err)
	}

	return c.run(ctx, OperationCreateCutout, EndpointCutout, body)
}

// CreateMask creates a mask of the main subject.
func (c *client) CreateMask(ctx context.Context, input, output any) (*Job, error) {
	body, err := c.singleFileBody(ctx, input, output)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OperationCreateMask, err)
	}

	return c.run(ctx, OperationCreateMask, EndpointMask, body)
}

func (c *client) singleFileBody(ctx context.Context, input, output any) (*singleFileRequest, error) {
	in, err := c.resolver.ResolveInput(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("resolve input: %w", err)
	}

	out, err := c.resolver.ResolveOutput(ctx, output)
	if err != nil {
		return nil, fmt.Errorf("resolve output: %w", err)
	}

	return &singleFileRequest{Input: in, Output: out}, nil
}
