package popup

import "strings"

// Line is one rendered line of the result.
type Line struct {
	Text   string
	Bullet bool
}

// RenderLines splits text on newlines. Lines starting with '*' or '-' are
// marked as bullets and rendered with a hanging indent.
func RenderLines(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for _, s := range raw {
		lines = append(lines, Line{
			Text:   s,
			Bullet: strings.HasPrefix(s, "*") || strings.HasPrefix(s, "-"),
		})
	}
	return lines
}
