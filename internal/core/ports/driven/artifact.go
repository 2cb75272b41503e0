package driven

import "context"

// Signer produces detached signatures for release artifacts.
type Signer interface {
	// Sign writes a detached armored signature for the file at path
	// and returns the signature file path (path + ".asc"). keyID
	// selects the signing identity; empty means the tool's default.
	Sign(ctx context.Context, path, keyID string) (string, error)
}

// Checksummer writes digest sidecar files for release artifacts.
type Checksummer interface {
	// WriteSidecars computes the configured digests of the file at
	// path and writes one "<path>.<ext>" sidecar per digest in
	// coreutils format. Returns the sidecar paths in a stable order.
	WriteSidecars(path string) ([]string, error)
}

// DistStore publishes release candidates to the external distribution
// repository where artifacts are staged for the vote.
type DistStore interface {
	// Publish creates directory name under the store root, adds the
	// given local files to it and commits them remotely with message.
	Publish(ctx context.Context, name string, files []string, message string) error
}
