package audiohash

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wbtb/audiohash/internal/digestcache"
)

// Renamer normalizes one directory of audio files to content-derived names.
type Renamer struct {
	dir          string
	manifestPath string
	ext          string
	prefixLen    int
	cache        *digestcache.Cache
	log          *log.Logger
}

// Result reports what one run did.
type Result struct {
	Found       int      // files with the target extension
	Renamed     int      // files renamed this run
	Skipped     int      // files already carrying a digest name
	BytesHashed int64    // content bytes streamed through the hash
	Entries     []string // final filenames, sorted, as written to the manifest
}

// New creates a Renamer for the given directory.
func New(dir string, opts ...Option) *Renamer {
	options := defaultOptions(dir)
	for _, opt := range opts {
		opt(options)
	}

	return &Renamer{
		dir:          dir,
		manifestPath: options.ManifestPath,
		ext:          options.Extension,
		prefixLen:    options.PrefixLen,
		cache:        options.Cache,
		log:          options.Logger,
	}
}

// Run performs the batch operation: scan, classify, hash, rename, write
// manifest. Any rename or write failure aborts immediately; files renamed
// before the failure stay renamed and no manifest is written.
func (r *Renamer) Run() (*Result, error) {
	info, err := os.Stat(r.dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, r.dir)
	}

	names, err := r.scan()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", ErrNoFiles, r.ext, r.dir)
	}

	r.log.Info("scan complete", "dir", r.dir, "files", len(names))

	res := &Result{Found: len(names)}
	var manifest Manifest

	for _, name := range names {
		final, renamed, err := r.process(name, res)
		if err != nil {
			return nil, err
		}
		if renamed {
			res.Renamed++
			r.log.Debug("renamed", "from", name, "to", final)
		} else {
			res.Skipped++
		}
		manifest.Add(final)
	}

	if r.cache != nil {
		if err := r.cache.Save(); err != nil {
			// Cache persistence is best-effort; never fail the run over it.
			r.log.Debug("cache save failed", "err", err)
		}
	}

	if err := manifest.WriteFile(r.manifestPath); err != nil {
		return nil, err
	}

	res.Entries = manifest.Entries()
	return res, nil
}

// scan lists filenames with the target extension, sorted by name. Nested
// directories and hidden files are ignored.
func (r *Renamer) scan() ([]string, error) {
	dirEntries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", r.dir, err)
	}

	var names []string
	for _, e := range dirEntries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !strings.HasSuffix(e.Name(), r.ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// process handles a single file and returns its final name.
func (r *Renamer) process(name string, res *Result) (final string, renamed bool, err error) {
	if IsHashedName(name, r.ext, r.prefixLen) {
		return name, false, nil
	}

	path := filepath.Join(r.dir, name)
	digest, err := r.digestFor(path, res)
	if err != nil {
		return "", false, fmt.Errorf("hash %s: %w", name, err)
	}

	newName := digest.Prefix(r.prefixLen) + r.ext
	newPath := filepath.Join(r.dir, newName)

	// Collision: another file already owns the candidate name. Extend the
	// prefix once to disambiguate; a collision at the extended length is
	// not handled.
	if occupied(newPath) && newPath != path {
		newName = digest.Prefix(r.prefixLen+4) + r.ext
		newPath = filepath.Join(r.dir, newName)
	}

	// A previously extended name hashes back to itself; nothing to do.
	if newPath == path {
		return name, false, nil
	}

	if err := os.Rename(path, newPath); err != nil {
		return "", false, fmt.Errorf("rename %s: %w", name, err)
	}

	if r.cache != nil {
		r.cache.Forget(cacheKey(path))
		if info, err := os.Stat(newPath); err == nil {
			r.cache.Record(cacheKey(newPath), info, string(digest))
		}
	}

	return newName, true, nil
}

// digestFor returns the content digest for path, consulting the cache first.
func (r *Renamer) digestFor(path string, res *Result) (Digest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if r.cache != nil {
		if d, ok := r.cache.Lookup(cacheKey(path), info); ok {
			return Digest(d), nil
		}
	}

	d, n, err := HashFile(path)
	if err != nil {
		return "", err
	}
	res.BytesHashed += n

	if r.cache != nil {
		r.cache.Record(cacheKey(path), info, string(d))
	}
	return d, nil
}

func occupied(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// cacheKey normalizes a path so cache entries survive cwd changes.
func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
