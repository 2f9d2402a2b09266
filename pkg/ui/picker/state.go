package picker

import (
	"palettegen/pkg/palette"
)

// NoCopy is the copied index when no swatch is marked.
const NoCopy = -1

// State is everything the widget renders. Transitions never fail; they are
// applied from the Bubble Tea update loop only.
type State struct {
	Loading  bool
	Palette  palette.Palette
	Copied   int
	DarkMode bool
	// Fallback reports that the current palette came from the fallback rule.
	Fallback bool
	// Failed reports that the last request ended with a transport error.
	Failed bool

	copySeq uint64
}

// NewState returns an idle state with an empty palette.
func NewState(darkMode bool) State {
	return State{Copied: NoCopy, DarkMode: darkMode}
}

// BeginRequest sets the loading flag. It reports false, leaving the state
// untouched, when a request is already outstanding.
func (s *State) BeginRequest() bool {
	if s.Loading {
		return false
	}

	s.Loading = true
	s.Failed = false
	return true
}

// ResolveSuccess replaces the palette with colors extracted from a reply.
func (s *State) ResolveSuccess(colors palette.Palette) {
	s.Loading = false
	s.Failed = false
	s.Fallback = false
	s.replacePalette(colors)
}

// ResolveFallback replaces the palette with the fallback colors.
func (s *State) ResolveFallback() {
	s.Loading = false
	s.Failed = false
	s.Fallback = true
	s.replacePalette(palette.Fallback())
}

// ResolveError clears loading and keeps the palette from before the request.
func (s *State) ResolveError() {
	s.Loading = false
	s.Failed = true
}

// BeginCopy marks index as copied and returns the sequence number its expiry
// must present. A later copy supersedes the mark.
func (s *State) BeginCopy(index int) uint64 {
	s.copySeq++
	s.Copied = index
	return s.copySeq
}

// ExpireCopy clears the mark set by the copy with sequence seq. It reports
// false for a stale expiry whose mark has been superseded.
func (s *State) ExpireCopy(seq uint64) bool {
	if seq != s.copySeq || s.Copied == NoCopy {
		return false
	}

	s.Copied = NoCopy
	return true
}

// ToggleTheme flips between light and dark display.
func (s *State) ToggleTheme() {
	s.DarkMode = !s.DarkMode
}

func (s *State) replacePalette(colors palette.Palette) {
	s.Palette = colors.Clone()
	// The marked index refers to the old palette.
	s.Copied = NoCopy
	s.copySeq++
}
