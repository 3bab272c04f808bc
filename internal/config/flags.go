package config

import (
	"github.com/spf13/pflag"
)

// FlagSource is the command-line layer. A leaf is only found when the table
// links it to an option and that option was given on the command line;
// option defaults never take part in the merge.
type FlagSource struct {
	links Links
	flags *pflag.FlagSet
}

// NewFlagSource returns the command-line layer over parsed flags. A nil
// FlagSet yields an empty layer.
func NewFlagSource(links Links, flags *pflag.FlagSet) *FlagSource {
	return &FlagSource{links: links, flags: flags}
}

// Lookup implements [Source].
func (s *FlagSource) Lookup(path []string) (any, bool) {
	if s.flags == nil {
		return nil, false
	}
	link, ok := s.links.lookup(path)
	if !ok || link.Flag == "" {
		return nil, false
	}

	f := s.flags.Lookup(link.Flag)
	if f == nil || !f.Changed {
		return nil, false
	}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return sv.GetSlice(), true
	}
	return f.Value.String(), true
}
