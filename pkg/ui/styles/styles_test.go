package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasSemanticStyles(t *testing.T) {
	reg := Default()
	for _, name := range []string{"Header", "Success", "Error", "Warning", "Info", "Muted", "FilePath", "Dir", "Bullet"} {
		_, ok := reg[name]
		assert.True(t, ok, "missing style %s", name)
	}
}

func TestLoad(t *testing.T) {
	reg, err := Load([]byte(`
colors:
  red: {light: "#ff0000", dark: "#aa0000"}
styles:
  Alert:
    bold: true
    foreground: red
`))
	require.NoError(t, err)

	assert.True(t, reg.Get("Alert").GetBold())
	assert.Contains(t, reg.Render("Alert", "boom"), "boom")
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load([]byte("styles: [unclosed"))
	assert.Error(t, err)
}

func TestGet_Unknown(t *testing.T) {
	assert.Equal(t, "plain", Registry{}.Render("Nope", "plain"))
}
