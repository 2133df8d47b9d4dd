package bomimport

import (
	"strings"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
)

// AllowedPartSet is the read-only set of parts permitted as components of
// the session's parent assembly. Computed once when the session starts.
type AllowedPartSet struct {
	parts []*part.Part
	byID  map[uint]*part.Part
}

func NewAllowedPartSet(parts []*part.Part) *AllowedPartSet {
	s := &AllowedPartSet{
		parts: parts,
		byID:  make(map[uint]*part.Part, len(parts)),
	}
	for _, p := range parts {
		s.byID[p.ID()] = p
	}
	return s
}

// Resolve returns the allowed part with the given identifier.
func (s *AllowedPartSet) Resolve(id uint) (*part.Part, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// ResolveIPN returns the allowed parts whose internal part number matches
// the given value case-insensitively.
func (s *AllowedPartSet) ResolveIPN(ipn string) []*part.Part {
	ipn = strings.TrimSpace(ipn)
	if ipn == "" {
		return nil
	}
	var out []*part.Part
	for _, p := range s.parts {
		if p.IPN() != "" && strings.EqualFold(p.IPN(), ipn) {
			out = append(out, p)
		}
	}
	return out
}

func (s *AllowedPartSet) Parts() []*part.Part {
	return s.parts
}

func (s *AllowedPartSet) Len() int {
	return len(s.parts)
}
