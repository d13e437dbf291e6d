package coordination

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/carecircle/internal/matcher"
	"github.com/dukerupert/carecircle/internal/model"
)

func TestActiveMatchesCrossFamily(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.AddOffer(ctx, relative, "cook")
	require.NoError(t, err)
	_, err = f.svc.AddRequest(ctx, senior, "shop")
	require.NoError(t, err)

	view := f.svc.ActiveMatches(ctx, "c1", nil)
	require.False(t, view.Stale)
	require.Len(t, view.Data.Matches, 1)
	require.NotNil(t, view.Data.Top)
	assert.Equal(t, matcher.TypeOfferRequest, view.Data.Top.Type)
	assert.True(t, view.Data.Top.IsCrossFamily)
	assert.Equal(t, "plan-meal", view.Data.Top.Celebration.Action)
	require.NotNil(t, view.Data.Surfaced)

	dismissed := map[string]bool{view.Data.Top.Key(): true}
	view = f.svc.ActiveMatches(ctx, "c1", dismissed)
	assert.Nil(t, view.Data.Surfaced)
	assert.Len(t, view.Data.Matches, 1)
}

func TestActiveMatchesStatus(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.AddRequest(ctx, senior, "company")
	require.NoError(t, err)
	_, err = f.svc.SetStatus(ctx, relative, model.StatusCoffeeComing)
	require.NoError(t, err)

	view := f.svc.ActiveMatches(ctx, "c1", nil)
	require.NotEmpty(t, view.Data.Matches)
	assert.True(t, view.Data.Top.IsStatusMatch)
}

func TestAddHelpUnknownCatalogID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.AddOffer(ctx, relative, "juggling")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.AddRequest(ctx, senior, "juggling")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.SetStatus(ctx, senior, "asleep")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveOnlyOwnHelp(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	offer, err := f.svc.AddOffer(ctx, relative, "drive")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.RemoveOffer(ctx, senior, offer.DocID), ErrNotFound)
	require.NoError(t, f.svc.RemoveOffer(ctx, relative, offer.DocID))
	assert.Empty(t, f.svc.Board(ctx, "c1").Data.Offers)

	req, err := f.svc.AddRequest(ctx, senior, "ride")
	require.NoError(t, err)
	require.NoError(t, f.svc.RemoveRequest(ctx, senior, req.DocID))
	assert.ErrorIs(t, f.svc.RemoveRequest(ctx, senior, req.DocID), ErrNotFound)
}
