package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SnapshotSuffix marks a development version in the marker file.
// Parsing accepts any letter case; the canonical form is uppercase.
const SnapshotSuffix = "-SNAPSHOT"

// Level selects which version component a release increments.
type Level int

const (
	LevelPatch Level = iota
	LevelMinor
	LevelMajor
)

// String returns the long level name.
func (l Level) String() string {
	switch l {
	case LevelPatch:
		return "patch"
	case LevelMinor:
		return "minor"
	case LevelMajor:
		return "major"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel parses a level flag value. Short forms follow the usual
// convention: "m" is minor, "M" is major.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "p", "patch":
		return LevelPatch, nil
	case "m", "minor":
		return LevelMinor, nil
	case "M", "major":
		return LevelMajor, nil
	default:
		return 0, fmt.Errorf("%w: unknown level %q (want p/patch, m/minor or M/major)", ErrInvalidInput, s)
	}
}

// Version is a three-component version, optionally carrying the
// development snapshot suffix.
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Snapshot bool
}

// ParseVersion parses "MAJOR.MINOR.PATCH" with an optional snapshot
// suffix. Surrounding whitespace is trimmed; anything else is rejected.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimSpace(s)

	var v Version
	core := raw
	if n := len(raw) - len(SnapshotSuffix); n >= 0 && strings.EqualFold(raw[n:], SnapshotSuffix) {
		v.Snapshot = true
		core = raw[:n]
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q is not a MAJOR.MINOR.PATCH version", ErrInvalidInput, raw)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := parseComponent(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q is not a MAJOR.MINOR.PATCH version", ErrInvalidInput, raw)
		}
		nums[i] = n
	}

	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return v, nil
}

// parseComponent parses one version component: digits only, no signs.
func parseComponent(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty component")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
	}
	return strconv.Atoi(s)
}

// String renders the version, suffix included for snapshots.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Snapshot {
		s += SnapshotSuffix
	}
	return s
}

// Release returns the version with the snapshot suffix removed.
func (v Version) Release() Version {
	v.Snapshot = false
	return v
}

// AsSnapshot returns the version with the snapshot suffix applied.
func (v Version) AsSnapshot() Version {
	v.Snapshot = true
	return v
}

// Bump returns the next version at the given level. Lower components
// reset to zero; the result never carries the suffix.
func (v Version) Bump(level Level) Version {
	out := Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	switch level {
	case LevelMajor:
		out.Major++
		out.Minor = 0
		out.Patch = 0
	case LevelMinor:
		out.Minor++
		out.Patch = 0
	default:
		out.Patch++
	}
	return out
}

// RC returns the candidate identifier "<release version>-rc<n>".
func (v Version) RC(n int) string {
	return fmt.Sprintf("%s-rc%d", v.Release(), n)
}
