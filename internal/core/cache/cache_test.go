package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

type row struct {
	Name string `json:"name"`
}

func TestGetOrLoadJSONCachesValue(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]row, error) {
		calls++
		return []row{{Name: "Cap"}}, nil
	}

	got, err := GetOrLoadJSON(c, ctx, "items:all", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []row{{Name: "Cap"}}, got)

	got, err = GetOrLoadJSON(c, ctx, "items:all", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []row{{Name: "Cap"}}, got)
	assert.Equal(t, 1, calls)

	assert.True(t, mr.Exists("items:all"))
	assert.Equal(t, time.Minute, mr.TTL("items:all"))
}

func TestGetOrLoadJSONLoadError(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("db down")
	_, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (row, error) {
		return row{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("k", `{"name":"old"}`))

	require.NoError(t, c.Invalidate(ctx, "k"))
	assert.False(t, mr.Exists("k"))

	got, err := GetOrLoadJSON(c, ctx, "k", time.Minute, func(context.Context) (row, error) {
		return row{Name: "new"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
}

func TestGetOrLoadJSONUndecodable(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("k", `not json`))

	got, err := GetOrLoadJSON(c, ctx, "k", time.Minute, func(context.Context) (row, error) {
		return row{Name: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
	assert.False(t, mr.Exists("k"))
}

func TestGetOrLoadRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	got, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return []byte("v"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestInvalidateDuringLoadSkipsWrite(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	type result struct {
		b   []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		b, err := c.GetOrLoad(ctx, "items", time.Minute, func(context.Context) ([]byte, error) {
			close(started)
			<-release
			return []byte("before-write"), nil
		})
		done <- result{b, err}
	}()

	<-started
	require.NoError(t, c.Invalidate(ctx, "items"))
	close(release)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, "before-write", string(res.b))

	// 回源开始后被失效，结果不回写
	assert.False(t, mr.Exists("items"))

	got, err := c.GetOrLoad(ctx, "items", time.Minute, func(context.Context) ([]byte, error) {
		return []byte("after-write"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "after-write", string(got))
	v, err := mr.Get("items")
	require.NoError(t, err)
	assert.Equal(t, "after-write", v)
}
