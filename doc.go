// Package audiohash normalizes a directory of audio files to content-derived
// names and records the result in a JSON manifest.
//
// Each file is renamed to the leading hex characters of its SHA-256 digest,
// so names are stable across machines and re-runs. Files that already carry
// a digest-shaped name are passed through untouched, which makes the whole
// operation idempotent.
//
// Basic usage:
//
//	r := audiohash.New("audio")
//
//	res, err := r.Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Renamed, "renamed,", res.Skipped, "already hashed")
//
// With options:
//
//	r := audiohash.New("audio",
//	    audiohash.WithExtension(".flac"),
//	    audiohash.WithPrefixLen(16),
//	    audiohash.WithManifestPath("tracks.json"),
//	)
//
// With a persistent digest cache (unchanged files are never rehashed):
//
//	cache := digestcache.Open(digestcache.DefaultPath())
//	r := audiohash.New("audio", audiohash.WithDigestCache(cache))
//
// The operation is a single linear batch: scan, classify, hash, rename,
// write manifest. It is synchronous and single-threaded; any rename or
// manifest write failure aborts the run with no rollback.
package audiohash
