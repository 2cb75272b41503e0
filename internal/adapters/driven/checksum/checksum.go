// Package checksum writes digest sidecar files for release artifacts.
//
// Digests are computed in-process rather than by shelling out to the
// coreutils *sum tools, but the sidecar format is kept compatible with
// them: "<hex digest>  <filename>\n", so downstream "shaNsum -c"
// verification keeps working. MD5 and SHA-1 are retained for legacy
// mirror tooling; SHA-256 is the digest referenced by the vote notice.
package checksum

import (
	"crypto/md5"  //nolint:gosec // legacy sidecar format, not used for security
	"crypto/sha1" //nolint:gosec // legacy sidecar format, not used for security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/meridian-labs/relcut-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.Checksummer = (*Writer)(nil)

// digest pairs a sidecar extension with its hash constructor.
type digest struct {
	ext string
	fn  func() hash.Hash
}

// sidecar order is stable: legacy digests first, strongest last.
var digests = []digest{
	{"md5", md5.New},
	{"sha1", sha1.New},
	{"sha256", sha256.New},
	{"sha512", sha512.New},
}

// Writer computes digest sidecars for artifact files.
type Writer struct{}

// NewWriter creates a checksum writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteSidecars computes all digests of the file at path in a single
// pass and writes one "<path>.<ext>" sidecar per digest.
func (w *Writer) WriteSidecars(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	hashes := make([]hash.Hash, len(digests))
	writers := make([]io.Writer, len(digests))
	for i, d := range digests {
		hashes[i] = d.fn()
		writers[i] = hashes[i]
	}

	if _, err := io.Copy(io.MultiWriter(writers...), f); err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}

	name := filepath.Base(path)
	paths := make([]string, 0, len(digests))
	for i, d := range digests {
		sidecar := path + "." + d.ext
		line := fmt.Sprintf("%s  %s\n", hex.EncodeToString(hashes[i].Sum(nil)), name)
		if err := os.WriteFile(sidecar, []byte(line), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", sidecar, err)
		}
		paths = append(paths, sidecar)
	}

	return paths, nil
}
