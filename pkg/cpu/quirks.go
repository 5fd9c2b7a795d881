package cpu

import (
	"errors"
	"fmt"
	"strings"
)

// Quirks selects between behaviours that differ across interpreter
// generations. ROMs written for one generation can misbehave on another, so
// the choice is left to the host.
type Quirks struct {
	// ShiftUsesVY makes 8xy6/8xyE shift Vy into Vx. When false, Vx is shifted
	// in place and Vy is ignored.
	ShiftUsesVY bool
	// LoadStoreIncrementsI makes Fx55/Fx65 advance I by x+1.
	LoadStoreIncrementsI bool
	// LogicResetsVF makes 8xy1/8xy2/8xy3 clear VF.
	LogicResetsVF bool
	// ClipSprites clips sprite pixels that cross the right or bottom edge.
	// When false they wrap around to the opposite edge.
	ClipSprites bool
	// IndexOverflowFlag makes Fx1E set VF when I leaves the 12-bit range.
	IndexOverflowFlag bool
}

var (
	// QuirksModern is the default behaviour.
	QuirksModern = Quirks{
		ShiftUsesVY:          true,
		LoadStoreIncrementsI: true,
		LogicResetsVF:        true,
		ClipSprites:          true,
		IndexOverflowFlag:    true,
	}

	// QuirksLegacy matches the earliest interpreters this package was
	// compared against: in-place shifts, I left alone by Fx55/Fx65, VF
	// untouched by logic ops, wrapping sprites and no Fx1E flag.
	QuirksLegacy = Quirks{}
)

var ErrUnknownQuirks = errors.New("unknown quirks profile")

var quirkProfiles = map[string]Quirks{
	"modern": QuirksModern,
	"legacy": QuirksLegacy,
}

// ParseQuirks returns the named quirks profile.
func ParseQuirks(name string) (Quirks, error) {
	q, ok := quirkProfiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Quirks{}, fmt.Errorf("%w: %q (valid: modern, legacy)", ErrUnknownQuirks, name)
	}
	return q, nil
}
