package audiohash

import "errors"

var (
	ErrDirNotFound = errors.New("audiohash: directory not found")
	ErrNoFiles     = errors.New("audiohash: no matching files")
)
