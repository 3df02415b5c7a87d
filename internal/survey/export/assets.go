package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"survey-portal/survey-portal-backend/pkg/storage"
)

// AssetSource resolves logical asset paths such as "images/LETTER_HEAD.png".
type AssetSource interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FSSource serves assets from a file system.
type FSSource struct {
	FS fs.FS
}

// DirSource serves assets from a directory on disk, typically the web root.
func DirSource(root string) FSSource {
	return FSSource{FS: os.DirFS(root)}
}

func (s FSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := s.FS.Open(cleanAssetPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
		}
		return nil, err
	}
	return f, nil
}

// BucketSource serves assets from an S3 bucket under an optional key prefix.
type BucketSource struct {
	client storage.S3Client
	bucket string
	prefix string
}

func NewBucketSource(client storage.S3Client, bucket, prefix string) *BucketSource {
	return &BucketSource{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *BucketSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := cleanAssetPath(name)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	rc, err := s.client.Download(ctx, s.bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
		}
		return nil, err
	}
	return rc, nil
}

func cleanAssetPath(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// AttachmentSource is a caller supplied photo.
type AttachmentSource struct {
	Name  string
	Title string
	Data  []byte
}

// AssetRequest names the assets of one report.
type AssetRequest struct {
	Background  string
	Signature   string // empty means no signature
	Attachments []AttachmentSource
}

// LoaderOptions tunes asset loading.
type LoaderOptions struct {
	Concurrency            int   `json:"concurrency"`
	MaxAssetBytes          int64 `json:"max_asset_bytes"`
	MaxAttachmentDimension int   `json:"max_attachment_dimension"`
	// MaxPixels bounds the decoded size of every image, background included.
	MaxPixels int64 `json:"max_pixels"`
}

// DefaultLoaderOptions returns conservative limits for photo uploads.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{
		Concurrency:            4,
		MaxAssetBytes:          20 << 20,
		MaxAttachmentDimension: 1600,
		MaxPixels:              40_000_000,
	}
}

// AssetLoader fetches and decodes the images of a report before layout.
type AssetLoader struct {
	source AssetSource
	opts   LoaderOptions
	logger *zap.Logger
}

func NewAssetLoader(source AssetSource, opts LoaderOptions, logger *zap.Logger) *AssetLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &AssetLoader{source: source, opts: opts, logger: logger}
}

// Load resolves every asset concurrently. Only a missing or undecodable
// background is an error; a bad signature or attachment is recorded in
// AssetSet.Warnings and left out.
func (l *AssetLoader) Load(ctx context.Context, req AssetRequest) (*AssetSet, error) {
	if req.Background == "" {
		return nil, fmt.Errorf("%w: no background path configured", ErrBackgroundMissing)
	}

	fixed := Decoder{MaxPixels: l.opts.MaxPixels}
	dec := Decoder{MaxDimension: l.opts.MaxAttachmentDimension, MaxPixels: l.opts.MaxPixels}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Concurrency)

	var (
		background *Raster
		signature  *Raster
		sigWarning string
		decoded    = make([]*Raster, len(req.Attachments))
		warnings   = make([]string, len(req.Attachments))
	)

	g.Go(func() error {
		data, err := l.read(gctx, req.Background)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrBackgroundMissing, req.Background, err)
		}
		r, err := fixed.Decode(req.Background, data)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrBackgroundInvalid, req.Background, err)
		}
		background = r
		return nil
	})

	if req.Signature != "" {
		g.Go(func() error {
			data, err := l.read(gctx, req.Signature)
			if err == nil {
				signature, err = fixed.Decode(req.Signature, data)
			}
			if err != nil {
				sigWarning = fmt.Sprintf("signature %s unavailable: %v", req.Signature, err)
				l.logger.Warn("Signature unavailable, using text marker",
					zap.String("asset", req.Signature), zap.Error(err))
				signature = nil
			}
			return nil
		})
	}

	for i, a := range req.Attachments {
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("attachment-%d", i+1)
		}
		g.Go(func() error {
			if l.opts.MaxAssetBytes > 0 && int64(len(a.Data)) > l.opts.MaxAssetBytes {
				warnings[i] = fmt.Sprintf("attachment %s skipped: %d bytes exceeds limit", name, len(a.Data))
				l.logger.Warn("Attachment too large, skipping", zap.String("asset", name), zap.Int("bytes", len(a.Data)))
				return nil
			}
			r, err := dec.Decode(name, a.Data)
			if err != nil {
				warnings[i] = fmt.Sprintf("attachment %s skipped: %v", name, err)
				l.logger.Warn("Attachment could not be decoded, skipping", zap.String("asset", name), zap.Error(err))
				return nil
			}
			decoded[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &AssetSet{Background: background, Signature: signature}
	if sigWarning != "" {
		set.Warnings = append(set.Warnings, sigWarning)
	}
	for i, r := range decoded {
		if r == nil {
			set.Warnings = append(set.Warnings, warnings[i])
			continue
		}
		set.Attachments = append(set.Attachments, GalleryImage{Raster: r, Title: req.Attachments[i].Title})
	}
	return set, nil
}

func (l *AssetLoader) read(ctx context.Context, name string) ([]byte, error) {
	rc, err := l.source.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := io.Reader(rc)
	if l.opts.MaxAssetBytes > 0 {
		r = io.LimitReader(rc, l.opts.MaxAssetBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if l.opts.MaxAssetBytes > 0 && int64(len(data)) > l.opts.MaxAssetBytes {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, l.opts.MaxAssetBytes)
	}
	return data, nil
}
