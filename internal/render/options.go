// Package render provides markdown rendering and colour themes for terminal output.
package render

// Options configures the markdown renderer behavior.
type Options struct {
	// Width is the word wrap column (default: 80)
	Width int

	// Style is a glamour standard style ("dark", "light", "notty", ...) or
	// a path to a JSON style file
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool

	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// key identifies a renderer configuration in the pool.
func (o Options) key() string {
	return fmtKey(o.Style, o.Width, o.EnableEmoji, o.PreserveNewLines, o.TableWrap, o.InlineTableLinks)
}
