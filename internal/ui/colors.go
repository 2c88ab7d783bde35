package ui

// Accessors for the roles of the active theme.

func ColorReset() string   { return GetCurrentTheme().Reset }
func ColorBold() string    { return GetCurrentTheme().Bold }
func ColorFamily() string  { return GetCurrentTheme().Family }
func ColorIndex() string   { return GetCurrentTheme().Index }
func ColorValue() string   { return GetCurrentTheme().Value }
func ColorSuccess() string { return GetCurrentTheme().Success }
func ColorWarning() string { return GetCurrentTheme().Warning }
func ColorError() string   { return GetCurrentTheme().Error }
func ColorMuted() string   { return GetCurrentTheme().Muted }

// Paint wraps s in the given colour code and a reset. With an empty code,
// s is returned unchanged.
func Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + ColorReset()
}

// Palette adapts the active theme to apperrors.ColorProvider.
type Palette struct{}

func (Palette) Yellow() string { return ColorWarning() }
func (Palette) Red() string    { return ColorError() }
func (Palette) Reset() string  { return ColorReset() }
