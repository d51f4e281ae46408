package popup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderLines(t *testing.T) {
	lines := RenderLines("Overview\n* first point\n- second point\n\nClosing * note")

	assert.Equal(t, []Line{
		{Text: "Overview"},
		{Text: "* first point", Bullet: true},
		{Text: "- second point", Bullet: true},
		{Text: ""},
		{Text: "Closing * note"},
	}, lines)
}

func TestRenderLines_SingleLine(t *testing.T) {
	assert.Equal(t, []Line{{Text: "A greeting."}}, RenderLines("A greeting."))
}
