package client

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PresignOptions are passed to FileStorage when a path has to be turned into a URL.
type PresignOptions struct {
	Permissions Permissions
	Expiry      time.Duration
}

// FileStorage generates presigned URLs for paths in an attached storage.
type FileStorage interface {
	GeneratePresignURL(ctx context.Context, path string, opts PresignOptions) (string, error)
}

// ResolverConfig configures a FileResolver.
type ResolverConfig struct {
	// PresignExpiry is the validity of generated presigned URLs. Defaults to one hour.
	PresignExpiry time.Duration
	// DefaultAdobeCloudPaths treats bare paths as Creative Cloud paths even
	// when a FileStorage is attached.
	DefaultAdobeCloudPaths bool
	Logger                 *zap.Logger
}

// FileResolver completes input and output references with their storage and,
// for outputs, their mime type.
//
// Storage is resolved as follows:
//   - an explicit storage is kept as-is
//   - a URL is classified by hostname as azure, dropbox or external
//   - a path is presigned through the attached FileStorage, or sent as a
//     Creative Cloud path when there is none
type FileResolver struct {
	files              FileStorage
	presignExpiry      time.Duration
	defaultPathStorage Storage
	logger             *zap.Logger
}

// NewFileResolver creates a resolver. files may be nil.
func NewFileResolver(files FileStorage, cfg ResolverConfig) *FileResolver {
	r := &FileResolver{
		files:              files,
		presignExpiry:      cfg.PresignExpiry,
		defaultPathStorage: StorageAdobe,
		logger:             cfg.Logger,
	}

	if r.presignExpiry <= 0 {
		r.presignExpiry = DefaultPresignExpiry
	}
	if files != nil && !cfg.DefaultAdobeCloudPaths {
		r.defaultPathStorage = StorageAIO
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	return r
}

// DefaultPathStorage returns the storage assigned to bare paths.
func (r *FileResolver) DefaultPathStorage() Storage {
	return r.defaultPathStorage
}

// resolveStorage returns the href to send and its storage.
func (r *FileResolver) resolveStorage(ctx context.Context, href string, permissions Permissions) (string, Storage, error) {
	if IsWebURL(href) {
		return href, InferStorageFromURL(href), nil
	}

	if r.defaultPathStorage != StorageAIO {
		return href, r.defaultPathStorage, nil
	}

	presigned, err := r.files.GeneratePresignURL(ctx, href, PresignOptions{
		Permissions: permissions,
		Expiry:      r.presignExpiry,
	})
	if err != nil {
		return "", "", fmt.Errorf("presign %s: %w", href, err)
	}

	r.logger.Debug("presigned file reference",
		zap.String("path", href),
		zap.String("permissions", string(permissions)),
		zap.Duration("expiry", r.presignExpiry),
	)

	return presigned, InferStorageFromURL(presigned), nil
}

// ResolveInput accepts a string href, an Input or an *Input.
func (r *FileResolver) ResolveInput(ctx context.Context, file any) (*Input, error) {
	var in *Input
	switch v := file.(type) {
	case nil:
		return nil, ErrNoFileProvided
	case string:
		if v == "" {
			return nil, ErrNoFileProvided
		}
		in = &Input{Href: v}
	case Input:
		in = &v
	case *Input:
		if v == nil {
			return nil, ErrNoFileProvided
		}
		in = v
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFile, file)
	}

	if in.Href == "" {
		return nil, errMissingHref(in)
	}
	if in.Storage != "" {
		return in, nil
	}

	href, storage, err := r.resolveStorage(ctx, in.Href, PermissionsRead)
	if err != nil {
		return nil, err
	}

	return &Input{Href: href, Storage: storage}, nil
}

// ResolveOutput accepts a string href, an Output or an *Output. The mime type
// is detected from the href extension unless already set.
func (r *FileResolver) ResolveOutput(ctx context.Context, file any) (*Output, error) {
	var out *Output
	switch v := file.(type) {
	case nil:
		return nil, ErrNoFileProvided
	case string:
		if v == "" {
			return nil, ErrNoFileProvided
		}
		out = &Output{Href: v}
	case Output:
		out = &v
	case *Output:
		if v == nil {
			return nil, ErrNoFileProvided
		}
		out = v
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFile, file)
	}

	if out.Href == "" {
		return nil, errMissingHref(out)
	}
	if out.Storage != "" && out.Type != "" {
		return out, nil
	}

	resolved := *out
	if resolved.Storage == "" {
		href, storage, err := r.resolveStorage(ctx, out.Href, PermissionsReadWrite)
		if err != nil {
			return nil, err
		}
		resolved.Href = href
		resolved.Storage = storage
	}
	if resolved.Type == "" {
		resolved.Type = InferMimeTypeFromPath(resolved.Href)
	}

	return &resolved, nil
}

// ResolveInputs accepts a single file or a slice of files and always returns a slice.
func (r *FileResolver) ResolveInputs(ctx context.Context, files any) ([]Input, error) {
	items, err := fileList[Input](files)
	if err != nil {
		return nil, err
	}

	return resolveAll(ctx, items, r.ResolveInput)
}

// ResolveOutputs accepts a single file or a slice of files and always returns a slice.
func (r *FileResolver) ResolveOutputs(ctx context.Context, files any) ([]Output, error) {
	items, err := fileList[Output](files)
	if err != nil {
		return nil, err
	}

	return resolveAll(ctx, items, r.ResolveOutput)
}

// ResolveDocumentOptions resolves the fonts and layer inputs of document
// options. The caller's options are left untouched.
func (r *FileResolver) ResolveDocumentOptions(ctx context.Context, opts *DocumentOptions) (*DocumentOptions, error) {
	if opts == nil {
		return nil, nil
	}

	resolved := *opts
	if opts.Fonts != nil {
		fonts, err := r.ResolveInputs(ctx, opts.Fonts)
		if err != nil {
			return nil, fmt.Errorf("resolve fonts: %w", err)
		}
		resolved.Fonts = fonts
	}

	if opts.Layers != nil {
		layers := make([]Layer, len(opts.Layers))
		copy(layers, opts.Layers)

		eg, egCtx := errgroup.WithContext(ctx)
		for i := range layers {
			if layers[i].Input == nil {
				continue
			}
			i := i
			eg.Go(func() error {
				in, err := r.ResolveInput(egCtx, layers[i].Input)
				if err != nil {
					return fmt.Errorf("resolve layer %d input: %w", i, err)
				}
				layers[i].Input = in
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		resolved.Layers = layers
	}

	return &resolved, nil
}

// ResolvePhotoshopActionsOptions resolves the action files and the fonts,
// patterns, brushes and additional images they need.
func (r *FileResolver) ResolvePhotoshopActionsOptions(ctx context.Context, opts *PhotoshopActionsOptions) (*PhotoshopActionsOptions, error) {
	if opts == nil {
		return nil, nil
	}

	resolved := *opts
	fields := []struct {
		name string
		src  []Input
		dst  *[]Input
	}{
		{"actions", opts.Actions, &resolved.Actions},
		{"fonts", opts.Fonts, &resolved.Fonts},
		{"patterns", opts.Patterns, &resolved.Patterns},
		{"brushes", opts.Brushes, &resolved.Brushes},
		{"additional images", opts.AdditionalImages, &resolved.AdditionalImages},
	}

	for _, field := range fields {
		if field.src == nil {
			continue
		}
		inputs, err := r.ResolveInputs(ctx, field.src)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", field.name, err)
		}
		*field.dst = inputs
	}

	return &resolved, nil
}

// fileList flattens the accepted scalar and slice shapes into a list of
// single-file values.
func fileList[T Input | Output](files any) ([]any, error) {
	switch v := files.(type) {
	case nil:
		return nil, ErrNoFileProvided
	case []any:
		return v, nil
	case []string:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return items, nil
	case []T:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return items, nil
	case []*T:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return items, nil
	default:
		return []any{files}, nil
	}
}

// resolveAll resolves items concurrently; the result keeps the input order.
func resolveAll[T any](ctx context.Context, items []any, resolve func(context.Context, any) (*T, error)) ([]T, error) {
	results := make([]T, len(items))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		eg.Go(func() error {
			resolved, err := resolve(egCtx, item)
			if err != nil {
				return err
			}
			results[i] = *resolved
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
