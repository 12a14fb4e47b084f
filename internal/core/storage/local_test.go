package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewLocalFs(afero.NewMemMapFs())

	require.NoError(t, st.Save(ctx, "1700000000000-cap.png", strings.NewReader("png-bytes"), "image/png"))

	obj, err := st.Open(ctx, "1700000000000-cap.png")
	require.NoError(t, err)
	b, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	require.NoError(t, obj.Body.Close())
	assert.Equal(t, "png-bytes", string(b))
	assert.Equal(t, int64(9), obj.Size)

	require.NoError(t, st.Delete(ctx, "1700000000000-cap.png"))
	_, err = st.Open(ctx, "1700000000000-cap.png")
	assert.ErrorIs(t, err, ErrNotExist)

	// 重复删除不报错
	assert.NoError(t, st.Delete(ctx, "1700000000000-cap.png"))
}

func TestLocalStoreRejectsPaths(t *testing.T) {
	ctx := context.Background()
	st := NewLocalFs(afero.NewMemMapFs())
	for _, name := range []string{"", ".", "..", "../x.png", "a/b.png"} {
		assert.Error(t, st.Save(ctx, name, strings.NewReader("x"), ""), name)
		_, err := st.Open(ctx, name)
		assert.Error(t, err, name)
	}
}

func TestNewLocalCreatesDir(t *testing.T) {
	dir := t.TempDir() + "/uploads"
	st, err := NewLocal(dir)
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), "a.png", strings.NewReader("x"), ""))

	ok, err := afero.Exists(afero.NewOsFs(), dir+"/a.png")
	require.NoError(t, err)
	assert.True(t, ok)
}
