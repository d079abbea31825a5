package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// directoryColor is the bright blue ANSI palette entry.
const directoryColor = lipgloss.Color("12")

// Styler decorates entry names according to their kind.
type Styler interface {
	Directory(name string) string
	File(name string) string
}

// ColorStyler colors directory names and leaves file names in the default color.
type ColorStyler struct {
	directoryStyle lipgloss.Style
	fileStyle      lipgloss.Style
}

// NewColorStyler builds a styler whose output always carries ANSI sequences,
// regardless of whether the eventual destination is a terminal.
func NewColorStyler() *ColorStyler {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(termenv.ANSI)
	return &ColorStyler{
		directoryStyle: renderer.NewStyle().Bold(true).Foreground(directoryColor),
		fileStyle:      renderer.NewStyle(),
	}
}

// Directory renders a directory name.
func (styler *ColorStyler) Directory(name string) string {
	return styler.directoryStyle.Render(name)
}

// File renders a file name.
func (styler *ColorStyler) File(name string) string {
	return styler.fileStyle.Render(name)
}

// PlainStyler returns names unchanged.
type PlainStyler struct{}

// NewPlainStyler constructs a styler that applies no decoration.
func NewPlainStyler() PlainStyler {
	return PlainStyler{}
}

// Directory returns name unchanged.
func (PlainStyler) Directory(name string) string {
	return name
}

// File returns name unchanged.
func (PlainStyler) File(name string) string {
	return name
}

// NewStyler selects the styler matching the color preference.
func NewStyler(colorEnabled bool) Styler {
	if colorEnabled {
		return NewColorStyler()
	}
	return NewPlainStyler()
}

var (
	_ Styler = (*ColorStyler)(nil)
	_ Styler = PlainStyler{}
)
