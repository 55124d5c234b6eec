package camera

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func TestFile_Capture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.jpg")
	require.NoError(t, os.WriteFile(path, jpegHeader, 0o644))

	img, err := NewFile(path).Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)
	assert.Equal(t, jpegHeader, img.Data)
}

func TestFile_Missing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "nope.jpg")).Capture(context.Background())
	assert.Error(t, err)
}

func TestCommand_Capture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.jpg")
	require.NoError(t, os.WriteFile(path, jpegHeader, 0o644))

	c, err := NewCommand("cat " + path)
	require.NoError(t, err)

	img, err := c.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)
}

func TestCommand_Failure(t *testing.T) {
	c, err := NewCommand("false")
	require.NoError(t, err)
	_, err = c.Capture(context.Background())
	assert.Error(t, err)

	_, err = NewCommand("  ")
	assert.Error(t, err)
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Capture(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
