package showreel

import (
	"errors"
	"fmt"
)

// ErrNoClips is reported for an auxiliary file that loads but carries no animation.
var ErrNoClips = errors.New("file contains no animation clips")

// ErrAlreadyStarted is returned by a second Start.
var ErrAlreadyStarted = errors.New("showreel already started")

// AssetGroup tells which kind of file failed.
type AssetGroup int

const (
	// GroupPrimary is the character file.
	GroupPrimary AssetGroup = iota

	// GroupAuxiliary is a separately loaded clip file.
	GroupAuxiliary
)

func (g AssetGroup) String() string {
	switch g {
	case GroupPrimary:
		return "primary"
	case GroupAuxiliary:
		return "auxiliary"
	default:
		return fmt.Sprintf("AssetGroup(%d)", int(g))
	}
}

// AssetLoadFailure records one file that could not be used.
type AssetLoadFailure struct {
	Path  string
	Group AssetGroup
	// Slot is the auxiliary slot; always 0 for the primary file.
	Slot int
	Err  error
}

func (e *AssetLoadFailure) Error() string {
	if e.Group == GroupAuxiliary {
		return fmt.Sprintf("load %s clip %q (slot %d): %v", e.Group, e.Path, e.Slot, e.Err)
	}
	return fmt.Sprintf("load %s model %q: %v", e.Group, e.Path, e.Err)
}

func (e *AssetLoadFailure) Unwrap() error {
	return e.Err
}
