package export

import "errors"

// Sentinel errors for report generation.
var (
	// Fatal: the page canvas cannot be established.
	ErrBackgroundMissing = errors.New("background asset missing")
	ErrBackgroundInvalid = errors.New("background asset could not be decoded")

	// Asset lookup and decoding.
	ErrAssetNotFound    = errors.New("asset not found")
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")

	ErrInvalidLayout = errors.New("invalid layout configuration")
)
