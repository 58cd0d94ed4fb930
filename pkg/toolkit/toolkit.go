// Package toolkit is a headless native-widget toolkit. Widgets hold their
// visible state in memory and fire callbacks the way a desktop toolkit does,
// which makes component trees fully drivable from tests and the CLI.
//
// Widgets are not safe for concurrent use. Touch them only from the UI thread.
package toolkit

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Widget is implemented by every toolkit widget.
type Widget interface {
	// Kind names the widget class, e.g. "label".
	Kind() string
	// PreferredSize is the size the widget needs to show its content.
	PreferredSize() Size
}

// Texter is implemented by widgets that display text.
type Texter interface {
	Widget
	Text() string
}

// Size is a widget size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// face is the fixed-size font all text is measured with.
var face font.Face = basicfont.Face7x13

// MeasureText returns the pixel size of s, one line per newline.
func MeasureText(s string) Size {
	lines := strings.Split(s, "\n")
	width := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	return Size{Width: width, Height: len(lines) * face.Metrics().Height.Ceil()}
}

func pad(s Size, x, y int) Size {
	return Size{Width: s.Width + 2*x, Height: s.Height + 2*y}
}
