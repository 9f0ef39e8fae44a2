package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeByName(t *testing.T) {
	t.Parallel()

	th, err := ThemeByName("Dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", th.Name)

	th, err = ThemeByName("")
	require.NoError(t, err)
	assert.Equal(t, "light", th.Name)

	_, err = ThemeByName("sepia")
	assert.Error(t, err)
}

func TestThemesValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Light.Validate())
	require.NoError(t, Dark.Validate())
	assert.Len(t, Light.Palette, 5)
	assert.Len(t, Dark.Palette, 5)

	empty := Light
	empty.Palette = nil
	assert.Error(t, empty.Validate())
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	c, err := parseColor("#0066CC")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x00), c.R)
	assert.Equal(t, uint8(0x66), c.G)
	assert.Equal(t, uint8(0xCC), c.B)
	assert.Equal(t, uint8(0xFF), c.A)

	_, err = parseColor("fff")
	assert.NoError(t, err)

	for _, bad := range []string{"", "#12", "#GGGGGG", "white"} {
		_, err := parseColor(bad)
		assert.Error(t, err, bad)
	}
}
