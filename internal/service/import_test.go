package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowhung/wagwan/internal/service"
	"github.com/lowhung/wagwan/internal/vcf"
)

func TestImport(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, 0)

	// One friend already exists.
	_, err := fx.tracker.AddFriend(ctx, service.AddParams{Name: "Alex Johnson", IntervalDays: 7})
	require.NoError(t, err)

	cards := []vcf.Card{
		{Name: "Alex Johnson", Phone: "+1 555 0100"}, // duplicate, skipped
		{Name: "Sam Porter", Email: "sam@example.com"},
		{Name: "  "},      // unusable name
		{Name: "Unknown"}, // parser fallback name, skipped
		{Name: "Nadia Reyes", Notes: "from book club"},
	}

	res, err := fx.tracker.Import(ctx, cards, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 3, res.Skipped)

	sam, err := fx.tracker.Resolve(ctx, "Sam Porter")
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", sam.Email)
	assert.Equal(t, 30, sam.ReminderIntervalDays, "default interval applied to imports")

	nadia, err := fx.tracker.Resolve(ctx, "Nadia Reyes")
	require.NoError(t, err)
	assert.Equal(t, "from book club", nadia.Notes)
}

func TestImport_Idempotent(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, 0)

	cards := []vcf.Card{{Name: "Sam Porter"}, {Name: "Nadia Reyes"}}

	first, err := fx.tracker.Import(ctx, cards, 14)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Added)

	second, err := fx.tracker.Import(ctx, cards, 14)
	require.NoError(t, err)
	assert.Zero(t, second.Added)
	assert.Equal(t, 2, second.Skipped)
}
