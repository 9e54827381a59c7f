package audiohash

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/wbtb/audiohash/internal/digestcache"
)

// DefaultPrefixLen is the number of leading digest characters used as the
// filename stem. 12 hex chars is 48 bits, comfortably collision-free for a
// directory of audio files.
const DefaultPrefixLen = 12

// DefaultExtension is the file extension processed when none is configured.
const DefaultExtension = ".mp3"

// Options configures a Renamer.
type Options struct {
	ManifestPath string
	Extension    string
	PrefixLen    int
	Logger       *log.Logger
	Cache        *digestcache.Cache
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions(dir string) *Options {
	return &Options{
		// Manifest lands next to the directory being processed,
		// e.g. dir "audio" -> "filelist.json" in the project root.
		ManifestPath: filepath.Join(filepath.Dir(filepath.Clean(dir)), "filelist.json"),
		Extension:    DefaultExtension,
		PrefixLen:    DefaultPrefixLen,
		Logger:       log.New(io.Discard),
	}
}

// WithManifestPath sets where the manifest is written.
func WithManifestPath(path string) Option {
	return func(o *Options) { o.ManifestPath = path }
}

// WithExtension sets the file extension to process (with leading dot).
func WithExtension(ext string) Option {
	return func(o *Options) {
		if ext != "" {
			o.Extension = ext
		}
	}
}

// WithPrefixLen sets how many leading digest characters form the new stem.
func WithPrefixLen(k int) Option {
	return func(o *Options) {
		if k > 0 {
			o.PrefixLen = k
		}
	}
}

// WithLogger sets the logger for progress output.
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithDigestCache attaches a persistent digest cache so unchanged files are
// not rehashed on repeated runs. Rename and manifest behavior is identical
// with or without it.
func WithDigestCache(cache *digestcache.Cache) Option {
	return func(o *Options) { o.Cache = cache }
}

// WithoutCache detaches any previously attached digest cache; every file is
// hashed from disk.
func WithoutCache() Option {
	return func(o *Options) { o.Cache = nil }
}
