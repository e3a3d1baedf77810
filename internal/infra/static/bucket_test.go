package static

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_FileRootIsCreated(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "static")

	bucket, err := Open(context.Background(), "file://"+root)
	require.NoError(t, err)
	defer bucket.Close()

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, bucket.WriteAll(context.Background(), "css/site.css", []byte("body{}"), nil))

	data, err := os.ReadFile(filepath.Join(root, "css", "site.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
}

func TestOpen_Memory(t *testing.T) {
	bucket, err := Open(context.Background(), "mem://")
	require.NoError(t, err)
	defer bucket.Close()

	require.NoError(t, bucket.WriteAll(context.Background(), "favicon.ico", []byte{0, 0, 1, 0}, nil))

	data, err := bucket.ReadAll(context.Background(), "favicon.ico")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 1, 0}, data)
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := Open(context.Background(), "nosuchscheme://bucket")
	assert.Error(t, err)
}
