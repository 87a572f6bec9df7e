package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountNumberGeneratorFormat(t *testing.T) {
	gen := NewAccountNumberGenerator(func() time.Time { return time.Unix(1700000000, 0) })

	for i := 0; i < 50; i++ {
		assert.Regexp(t, `^ACC1700000000[1-9]\d{2}$`, gen.Generate())
	}
}

func TestCardNumberGeneratorFormat(t *testing.T) {
	gen := NewCardNumberGenerator(func() time.Time { return time.Unix(1700000000, 0) })

	for i := 0; i < 50; i++ {
		number := gen.Generate()
		assert.True(t, domain.IsCardNumberShape(number), number)
		assert.Equal(t, "1700000000", number[:10])
	}
}

func TestAllocateUniqueSkipsTakenCandidates(t *testing.T) {
	candidates := []string{"a", "b", "c"}
	calls := 0
	gen := GeneratorFunc(func() string {
		next := candidates[calls]
		calls++
		return next
	})
	taken := map[string]bool{"a": true, "b": true}

	got, err := allocateUnique(context.Background(), gen, func(_ context.Context, id string) (bool, error) {
		return taken[id], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "c", got)
}

func TestAllocateUniqueStopsOnLookupError(t *testing.T) {
	boom := errors.New("boom")
	gen := GeneratorFunc(func() string { return "x" })

	_, err := allocateUnique(context.Background(), gen, func(context.Context, string) (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestAllocateUniqueHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := GeneratorFunc(func() string { return "x" })

	_, err := allocateUnique(ctx, gen, func(context.Context, string) (bool, error) {
		return true, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
