package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("repo: %w", MalformedIDError(ResourceItem, "bad"))
	assert.ErrorIs(t, err, ErrMalformedID)
	assert.NotErrorIs(t, err, ErrValidation)

	joined := errors.Join(DuplicateError(ResourceItem, errors.New("dup")), ValidationError(errors.New("name")))
	assert.ErrorIs(t, joined, ErrDuplicate)
	assert.ErrorIs(t, joined, ErrValidation)
	assert.NotErrorIs(t, joined, ErrMalformedID)
}

func TestSentinelDoesNotMatchConcreteError(t *testing.T) {
	// 具体错误不能反向匹配哨兵以外的值
	a := NotFoundError(ResourceItem)
	b := NotFoundError(ResourceUser)
	assert.NotErrorIs(t, a, b)
	assert.ErrorIs(t, a, ErrNotFound)
}

func TestNotFoundMessages(t *testing.T) {
	de, ok := AsError(NotFoundError(ResourceItem))
	require.True(t, ok)
	assert.Equal(t, MsgItemNotFound, de.Msg)

	de, ok = AsError(NotFoundError(ResourceUser))
	require.True(t, ok)
	assert.Equal(t, MsgUserNotFound, de.Msg)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "Forbidden", ForbiddenError(ResourceItem).Error())
	assert.Contains(t, MalformedIDError(ResourceItem, "x").Error(), `invalid object id "x"`)
	assert.Equal(t, "item duplicate", (&Error{Kind: Duplicate, Resource: ResourceItem}).Error())
}
