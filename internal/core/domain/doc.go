// Package domain defines the core business entities for relcut.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Version: A semantic version triple with snapshot marker
//   - ReleasePlan: Every name derived for one candidate run
//   - Artifact: The built tarball and its sidecar files
//   - ReleaseRecord: One row of the local release history
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
