package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wtwr-api/internal/core/database"
	"wtwr-api/internal/domain"
	"wtwr-api/pkg/utils"
)

const (
	alice = "6863bbc8eb627a884f678c38"
	bob   = "6863bbc8eb627a884f678c40"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	return database.NewTestDB(t, Models()...)
}

func mustCreateItem(t *testing.T, r *ItemRepo, name, owner string, at time.Time) *domain.ClothingItem {
	t.Helper()
	it := &domain.ClothingItem{
		ID:        utils.NewID(),
		Name:      name,
		Weather:   domain.WeatherHot,
		ImageURL:  "https://example.com/" + name + ".png",
		Owner:     owner,
		CreatedAt: at,
	}
	require.NoError(t, r.Create(context.Background(), it))
	return it
}

func TestItemRepoCreateAndList(t *testing.T) {
	r := NewItemRepo(newDB(t))
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	second := mustCreateItem(t, r, "Hoodie", alice, base.Add(time.Second))
	first := mustCreateItem(t, r, "Cap", alice, base)
	assert.Equal(t, []string{}, first.Likes)

	items, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.NotNil(t, items[0].Likes)
	assert.Empty(t, items[0].Likes)
	assert.WithinDuration(t, base, items[0].CreatedAt, time.Millisecond)
}

func TestItemRepoListEmpty(t *testing.T) {
	items, err := NewItemRepo(newDB(t)).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItemRepoDuplicateID(t *testing.T) {
	r := NewItemRepo(newDB(t))
	it := mustCreateItem(t, r, "Cap", alice, time.Now())
	dup := *it
	err := r.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemRepoLikeIsIdempotent(t *testing.T) {
	r := NewItemRepo(newDB(t))
	ctx := context.Background()
	it := mustCreateItem(t, r, "Cap", alice, time.Now())

	got, err := r.AddLike(ctx, it.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{alice}, got.Likes)

	got, err = r.AddLike(ctx, it.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{alice}, got.Likes)

	got, err = r.AddLike(ctx, it.ID, bob)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{alice, bob}, got.Likes)
}

func TestItemRepoUnlikePreservesOthers(t *testing.T) {
	r := NewItemRepo(newDB(t))
	ctx := context.Background()
	it := mustCreateItem(t, r, "Cap", alice, time.Now())

	_, err := r.AddLike(ctx, it.ID, alice)
	require.NoError(t, err)
	_, err = r.AddLike(ctx, it.ID, bob)
	require.NoError(t, err)

	got, err := r.RemoveLike(ctx, it.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{bob}, got.Likes)

	// 未点赞时取消是空操作
	got, err = r.RemoveLike(ctx, it.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{bob}, got.Likes)
}

func TestItemRepoConcurrentLikes(t *testing.T) {
	r := NewItemRepo(newDB(t))
	ctx := context.Background()
	it := mustCreateItem(t, r, "Cap", alice, time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.AddLike(ctx, it.ID, alice)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := r.FindByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alice}, got.Likes)
}

func TestItemRepoIDErrors(t *testing.T) {
	r := NewItemRepo(newDB(t))
	ctx := context.Background()
	absent := utils.NewID()

	_, err := r.AddLike(ctx, "invalid-id", alice)
	assert.ErrorIs(t, err, domain.ErrMalformedID)
	_, err = r.RemoveLike(ctx, "invalid-id", alice)
	assert.ErrorIs(t, err, domain.ErrMalformedID)
	assert.ErrorIs(t, r.Delete(ctx, "invalid-id", ""), domain.ErrMalformedID)
	_, err = r.FindByID(ctx, "invalid-id")
	assert.ErrorIs(t, err, domain.ErrMalformedID)

	_, err = r.AddLike(ctx, absent, alice)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.RemoveLike(ctx, absent, alice)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, absent, ""), domain.ErrNotFound)
	_, err = r.FindByID(ctx, absent)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// 不存在的物品点赞不会留下孤儿行
	var n int64
	require.NoError(t, r.db.Table("item_likes").Count(&n).Error)
	assert.Zero(t, n)
}

func TestItemRepoDelete(t *testing.T) {
	db := newDB(t)
	r := NewItemRepo(db)
	ctx := context.Background()
	it := mustCreateItem(t, r, "Cap", alice, time.Now())
	_, err := r.AddLike(ctx, it.ID, bob)
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, it.ID, ""))
	_, err = r.FindByID(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var n int64
	require.NoError(t, db.Table("item_likes").Where("item_id = ?", it.ID).Count(&n).Error)
	assert.Zero(t, n)

	assert.ErrorIs(t, r.Delete(ctx, it.ID, ""), domain.ErrNotFound)
}

func TestItemRepoDeleteOwnerOnly(t *testing.T) {
	r := NewItemRepo(newDB(t))
	ctx := context.Background()
	it := mustCreateItem(t, r, "Cap", alice, time.Now())

	assert.ErrorIs(t, r.Delete(ctx, it.ID, bob), domain.ErrForbidden)
	_, err := r.FindByID(ctx, it.ID)
	require.NoError(t, err)

	assert.NoError(t, r.Delete(ctx, it.ID, alice))
	assert.ErrorIs(t, r.Delete(ctx, it.ID, alice), domain.ErrNotFound)
}

func TestUserRepo(t *testing.T) {
	r := NewUserRepo(newDB(t))
	ctx := context.Background()

	u := &domain.User{ID: alice, Name: "Elise Bouer", Avatar: "https://example.com/e.png"}
	require.NoError(t, r.Create(ctx, u))
	assert.ErrorIs(t, r.Create(ctx, &domain.User{ID: alice, Name: "Again", Avatar: "https://example.com/a.png"}), domain.ErrDuplicate)

	got, err := r.FindByID(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Elise Bouer", got.Name)

	_, err = r.FindByID(ctx, "invalid-id")
	assert.ErrorIs(t, err, domain.ErrMalformedID)
	_, err = r.FindByID(ctx, bob)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepoDeleteCascade(t *testing.T) {
	db := newDB(t)
	users := NewUserRepo(db)
	items := NewItemRepo(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{ID: alice, Name: "Alice", Avatar: "https://example.com/a.png"}))
	require.NoError(t, users.Create(ctx, &domain.User{ID: bob, Name: "Bob", Avatar: "https://example.com/b.png"}))
	mine := mustCreateItem(t, items, "Cap", alice, time.Now())
	theirs := mustCreateItem(t, items, "Coat", bob, time.Now())
	_, err := items.AddLike(ctx, mine.ID, bob)
	require.NoError(t, err)
	_, err = items.AddLike(ctx, theirs.ID, alice)
	require.NoError(t, err)
	_, err = items.AddLike(ctx, theirs.ID, bob)
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, alice, true))

	_, err = items.FindByID(ctx, mine.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := items.FindByID(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob}, got.Likes)

	var n int64
	require.NoError(t, db.Table("item_likes").Count(&n).Error)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, users.Delete(ctx, alice, true), domain.ErrNotFound)
}

func TestUserRepoDeleteNoCascade(t *testing.T) {
	db := newDB(t)
	users := NewUserRepo(db)
	items := NewItemRepo(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{ID: alice, Name: "Alice", Avatar: "https://example.com/a.png"}))
	it := mustCreateItem(t, items, "Cap", alice, time.Now())
	_, err := items.AddLike(ctx, it.ID, alice)
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, alice, false))
	got, err := items.FindByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alice}, got.Likes)
	assert.ErrorIs(t, users.Delete(ctx, "invalid-id", false), domain.ErrMalformedID)
}

func TestIsDupKey(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{errors.New(`ERROR: duplicate key value violates unique constraint "users_pkey" (SQLSTATE 23505)`), true},
		{errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'PRIMARY'"), true},
		{errors.New("constraint failed: UNIQUE constraint failed: users.id (1555)"), true},
		{errors.New("duplicate column name: owner"), false},
		{errors.New("pq: could not serialize access due to concurrent update"), false},
	}
	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		assert.Equal(t, tt.want, isDupKey(tt.err), name)
	}
}
