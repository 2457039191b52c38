package client

import (
	"context"
	"encoding/json"
)

// Info provides metadata about the client
type Info interface {
	Name() string
	Version() string
}

// ImageEditor handles the single image operations. Files are given as a
// string href, an Input/Output, a pointer to one, or a slice of those where
// several outputs are accepted.
type ImageEditor interface {
	CreateCutout(ctx context.Context, input, output any) (*Job, error)
	CreateMask(ctx context.Context, input, output any) (*Job, error)
	Straighten(ctx context.Context, input, outputs any) (*Job, error)
	AutoTone(ctx context.Context, input, outputs any) (*Job, error)
	EditPhoto(ctx context.Context, input, outputs any, opts EditPhotoOptions) (*Job, error)
	ApplyPreset(ctx context.Context, input, preset, outputs any) (*Job, error)
	ApplyPresetXmp(ctx context.Context, input, outputs any, xmp string) (*Job, error)
}

// DocumentEditor handles Photoshop document operations
type DocumentEditor interface {
	CreateDocument(ctx context.Context, outputs any, opts *DocumentOptions) (*Job, error)
	GetDocumentManifest(ctx context.Context, input any, opts *ManifestOptions) (*Job, error)
	ModifyDocument(ctx context.Context, input, outputs any, opts *DocumentOptions) (*Job, error)
	CreateRendition(ctx context.Context, input, outputs any) (*Job, error)
	ReplaceSmartObject(ctx context.Context, input, outputs any, opts *DocumentOptions) (*Job, error)
	PlayPhotoshopActions(ctx context.Context, input, outputs any, opts *PhotoshopActionsOptions) (*Job, error)
}

// JobTracker exposes the status endpoint for jobs started elsewhere.
type JobTracker interface {
	GetJobStatus(ctx context.Context, url string) (json.RawMessage, error)
	TrackJob(initiate json.RawMessage) (*Job, error)
}

// Client combines all Photoshop API operations
type Client interface {
	Info
	ImageEditor
	DocumentEditor
	JobTracker
	Resolver() *FileResolver
}
