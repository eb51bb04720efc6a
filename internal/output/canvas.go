package output

import (
	"strings"
)

// BoxStyle defines the character set for drawing boxes
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	Shade       rune
}

var (
	// ASCIIStyle uses simple ASCII characters for box drawing
	ASCIIStyle = BoxStyle{
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
		Horizontal:  '-',
		Vertical:    '|',
		Shade:       '.',
	}

	// UnicodeStyle uses Unicode box drawing characters
	UnicodeStyle = BoxStyle{
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
		Horizontal:  '─',
		Vertical:    '│',
		Shade:       '░',
	}
)

// Canvas is a 2D rune buffer the grid is drawn onto
type Canvas struct {
	Width  int
	Height int
	buffer [][]rune
	style  BoxStyle
}

// NewCanvas creates a blank canvas with the specified dimensions
func NewCanvas(width, height int, useUnicode bool) *Canvas {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = []rune(strings.Repeat(" ", width))
	}

	style := ASCIIStyle
	if useUnicode {
		style = UnicodeStyle
	}

	return &Canvas{
		Width:  width,
		Height: height,
		buffer: buffer,
		style:  style,
	}
}

// SetCell sets a character at the specified position, ignoring out of range writes
func (c *Canvas) SetCell(x, y int, r rune) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.buffer[y][x] = r
	}
}

// GetCell returns the character at the specified position
func (c *Canvas) GetCell(x, y int) rune {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		return c.buffer[y][x]
	}
	return ' '
}

// DrawBox draws a box outline. Boxes placed one column/row apart share edges.
func (c *Canvas) DrawBox(x, y, width, height int) {
	if width < 2 || height < 2 {
		return
	}

	for i := 1; i < width-1; i++ {
		c.SetCell(x+i, y, c.style.Horizontal)
		c.SetCell(x+i, y+height-1, c.style.Horizontal)
	}
	for i := 1; i < height-1; i++ {
		c.SetCell(x, y+i, c.style.Vertical)
		c.SetCell(x+width-1, y+i, c.style.Vertical)
	}

	c.SetCell(x, y, c.style.TopLeft)
	c.SetCell(x+width-1, y, c.style.TopRight)
	c.SetCell(x, y+height-1, c.style.BottomLeft)
	c.SetCell(x+width-1, y+height-1, c.style.BottomRight)
}

// ShadeInside fills the interior of a box with the style's shade rune
func (c *Canvas) ShadeInside(x, y, width, height int) {
	for dy := 1; dy < height-1; dy++ {
		for dx := 1; dx < width-1; dx++ {
			c.SetCell(x+dx, y+dy, c.style.Shade)
		}
	}
}

// DrawText writes text at the specified position
func (c *Canvas) DrawText(x, y int, text string) {
	for i, r := range []rune(text) {
		c.SetCell(x+i, y, r)
	}
}

// DrawTextCentered writes text centered within a width, truncating if needed
func (c *Canvas) DrawTextCentered(x, y, width int, text string) {
	runes := []rune(text)
	if len(runes) >= width {
		c.DrawText(x, y, string(runes[:width]))
		return
	}
	c.DrawText(x+(width-len(runes))/2, y, text)
}

// String renders the canvas to a string
func (c *Canvas) String() string {
	var sb strings.Builder
	for i, row := range c.buffer {
		sb.WriteString(string(row))
		if i < len(c.buffer)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
