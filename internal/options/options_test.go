package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type target struct {
	level int
	name  string
}

func TestApplyInOrder(t *testing.T) {
	tg := &target{}

	err := Apply(tg,
		NoError(func(t *target) { t.level = 1 }),
		NoError(func(t *target) { t.name = "a" }),
		NoError(func(t *target) { t.level = 2 }),
	)

	require.NoError(t, err)
	assert.Equal(t, 2, tg.level)
	assert.Equal(t, "a", tg.name)
}

func TestApplyStopsAtFirstError(t *testing.T) {
	tg := &target{}
	boom := errors.New("boom")

	err := Apply(tg,
		NoError(func(t *target) { t.level = 1 }),
		New(func(t *target) error { return boom }),
		NoError(func(t *target) { t.level = 99 }),
	)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, tg.level, "options after the failing one must not run")
}

func TestApplyNoOptions(t *testing.T) {
	tg := &target{level: 5}
	require.NoError(t, Apply(tg))
	assert.Equal(t, 5, tg.level)
}
