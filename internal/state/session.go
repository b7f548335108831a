package state

import "slices"

// Setting is one adjustable integer knob of a drawer.
type Setting struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Value int `json:"value"`
}

// Drawer is a server-side pattern generator and its settings schema.
type Drawer struct {
	Name     string             `json:"name"`
	Settings map[string]Setting `json:"settings"`
}

// Session mirrors what the server says about mode, patterns and palette.
// It changes only when a server message arrives, with the exception of the
// mode toggle which the UI flips locally before the echo.
type Session struct {
	Mode         Mode
	ActiveDrawer string
	Drawers      []Drawer
	PaletteIndex int
	PaletteCount int
	FPS          float64
}

// NewSession returns the state a client starts with before any config arrives.
func NewSession() Session {
	return Session{Mode: ModePaint}
}

// Drawer looks up a catalog entry by name.
func (s *Session) Drawer(name string) (Drawer, bool) {
	i := slices.IndexFunc(s.Drawers, func(d Drawer) bool { return d.Name == name })
	if i < 0 {
		return Drawer{}, false
	}
	return s.Drawers[i], true
}

// ReplaceCatalog swaps in a new drawer list. The active drawer is kept as is.
func (s *Session) ReplaceCatalog(drawers []Drawer) {
	s.Drawers = slices.Clone(drawers)
}

// SetDrawerSettings replaces the settings schema of one drawer, adding the
// drawer to the catalog when it is not listed yet.
func (s *Session) SetDrawerSettings(name string, settings map[string]Setting) {
	i := slices.IndexFunc(s.Drawers, func(d Drawer) bool { return d.Name == name })
	if i < 0 {
		s.Drawers = append(s.Drawers, Drawer{Name: name, Settings: settings})
		return
	}
	// Copy on write; the previous slice may be shared with a snapshot.
	s.Drawers = slices.Clone(s.Drawers)
	s.Drawers[i].Settings = settings
}

// ActiveSettings returns the schema of the active drawer, if known.
func (s *Session) ActiveSettings() map[string]Setting {
	d, ok := s.Drawer(s.ActiveDrawer)
	if !ok {
		return nil
	}
	return d.Settings
}
