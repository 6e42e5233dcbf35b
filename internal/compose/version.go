package compose

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version selects the document shape.
type Version struct {
	// Tag is the value of the top-level version key. Empty means the flat
	// shape, where services sit at the document root.
	Tag string
}

// Flat reports whether the document has no version wrapper.
func (v Version) Flat() bool { return v.Tag == "" }

// ParseVersion parses a compose file version such as "1", "2.4" or "3".
// Major version 1 selects the flat shape. A bare "3" is written as "3.6".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid compose version %q: %w", s, err)
	}
	switch {
	case sv.Major() == 1:
		return Version{}, nil
	case s == "3":
		return Version{Tag: "3.6"}, nil
	}
	return Version{Tag: s}, nil
}
