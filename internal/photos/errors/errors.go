package errors

import "errors"

var (
	ErrUnsupportedImage = errors.New("unsupported image format")

	ErrTooLarge = errors.New("photo exceeds the size limit")
)
