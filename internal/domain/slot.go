package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PositionKind is the place of a segment inside a syllable.
type PositionKind int

const (
	Onset PositionKind = iota
	Nucleus
	Coda
)

var kindNames = [...]string{Onset: "onset", Nucleus: "nucleus", Coda: "coda"}

// String returns the label fragment used in slot labels.
func (k PositionKind) String() string {
	if !k.IsValid() {
		return "unknown"
	}
	return kindNames[k]
}

// IsValid reports whether k is one of the three known kinds.
func (k PositionKind) IsValid() bool {
	return k == Onset || k == Nucleus || k == Coda
}

const finalPrefix = "final"

// Slot identifies one row of the positional tables: either a (syllable index,
// position kind) pair, or the nucleus/coda of a word's last syllable.
//
// There is no final onset: onsets of last syllables are counted
// under their ordinary index.
type Slot struct {
	Index int
	Kind  PositionKind
	Final bool
}

// IndexedSlot returns the slot for position kind at 0-based syllable index.
func IndexedSlot(index int, kind PositionKind) Slot {
	return Slot{Index: index, Kind: kind}
}

// FinalNucleusSlot returns the slot holding nuclei of last syllables.
func FinalNucleusSlot() Slot {
	return Slot{Kind: Nucleus, Final: true}
}

// FinalCodaSlot returns the slot holding codas of last syllables.
func FinalCodaSlot() Slot {
	return Slot{Kind: Coda, Final: true}
}

// Label formats the slot the way it appears in output tables,
// e.g. "0_onset", "2_coda", "final_nucleus".
func (s Slot) Label() string {
	if s.Final {
		return finalPrefix + "_" + s.Kind.String()
	}
	return strconv.Itoa(s.Index) + "_" + s.Kind.String()
}

// String implements fmt.Stringer.
func (s Slot) String() string { return s.Label() }

// ParseSlot is the inverse of Slot.Label.
func ParseSlot(label string) (Slot, error) {
	prefix, kindStr, ok := strings.Cut(label, "_")
	if !ok {
		return Slot{}, NewValidationError("slot", fmt.Sprintf("malformed label %q", label))
	}

	var kind PositionKind
	switch kindStr {
	case "onset":
		kind = Onset
	case "nucleus":
		kind = Nucleus
	case "coda":
		kind = Coda
	default:
		return Slot{}, NewValidationError("slot", fmt.Sprintf("unknown position %q in %q", kindStr, label))
	}

	if prefix == finalPrefix {
		if kind == Onset {
			return Slot{}, NewValidationError("slot", "final onsets are recorded under their syllable index")
		}
		return Slot{Kind: kind, Final: true}, nil
	}

	idx, err := strconv.Atoi(prefix)
	if err != nil || idx < 0 {
		return Slot{}, NewValidationError("slot", fmt.Sprintf("bad syllable index in %q", label))
	}
	return IndexedSlot(idx, kind), nil
}

// Segments is a syllable decomposed into its three positions.
// Empty onset/coda hold EmptySegment.
type Segments struct {
	Onset   string
	Nucleus string
	Coda    string
}

// At returns the segment for kind.
func (s Segments) At(kind PositionKind) string {
	switch kind {
	case Onset:
		return s.Onset
	case Nucleus:
		return s.Nucleus
	default:
		return s.Coda
	}
}
