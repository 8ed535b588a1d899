package options

import "errors"

var (
	// ErrDirPathEmpty is returned by Validate when DirPath is empty or
	// all-whitespace.
	ErrDirPathEmpty = errors.New("options: dir path is empty")

	// ErrDataFileSizeTooSmall is returned by Validate when DataFileSize is
	// below MinDataFileSize.
	ErrDataFileSizeTooSmall = errors.New("options: data file size too small")
)
