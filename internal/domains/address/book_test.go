package address

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eversol-backend/internal/kvstore"
	"eversol-backend/pkg/events"
)

func newTestBook() *Book {
	return NewBook(kvstore.NewMemory(), events.NewBus())
}

func validInput(name string) NewAddress {
	return NewAddress{
		Name:         name,
		Phone:        "+919590922000",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
		Type:         TypeHome,
	}
}

func assertSingleDefault(t *testing.T, addresses []Address) {
	t.Helper()
	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults, "exactly one default expected")
}

func TestFirstAddressBecomesDefaultAndSelected(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	result := book.Create(ctx, validInput("Asha"))
	require.True(t, result.Success)
	assert.True(t, result.Address.IsDefault, "first address is auto-defaulted")

	selected := book.Selected(ctx)
	require.NotNil(t, selected)
	assert.Equal(t, result.Address.ID, selected.ID)
}

func TestDefaultExclusivity(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	first := book.Create(ctx, validInput("Asha"))
	second := validInput("Ravi")
	second.IsDefault = true
	created := book.Create(ctx, second)
	require.True(t, created.Success)

	addresses := book.List(ctx)
	require.Len(t, addresses, 2)
	assertSingleDefault(t, addresses)
	assert.Equal(t, created.Address.ID, addresses[0].ID, "default sorts first")
	assert.NotEqual(t, first.Address.ID, book.Selected(ctx).ID)
}

func TestUpdateMergesAndPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	created := book.Create(ctx, validInput("Asha"))
	newPhone := "+918800112233"
	updated := book.Update(ctx, Update{ID: created.Address.ID, Phone: &newPhone})
	require.True(t, updated.Success)

	assert.Equal(t, newPhone, updated.Address.Phone)
	assert.Equal(t, "Asha", updated.Address.Name, "unset fields keep their value")
	assert.Equal(t, created.Address.CreatedAt, updated.Address.CreatedAt)
	assert.True(t, updated.Address.UpdatedAt.After(created.Address.UpdatedAt) ||
		updated.Address.UpdatedAt.Equal(created.Address.UpdatedAt))
}

func TestUpdateUnknownIDFails(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	result := book.Update(ctx, Update{ID: "addr_missing"})
	assert.False(t, result.Success)
	assert.Equal(t, "Address not found", result.Message)
}

func TestDeleteRepairsSelection(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	first := book.Create(ctx, validInput("Asha"))
	second := book.Create(ctx, validInput("Ravi"))

	// Select the non-default second address, then delete it.
	require.True(t, book.SetSelected(ctx, second.Address.ID).Success)
	require.True(t, book.Delete(ctx, second.Address.ID).Success)

	selected := book.Selected(ctx)
	require.NotNil(t, selected)
	assert.Equal(t, first.Address.ID, selected.ID, "selection falls back to a live record")

	require.True(t, book.Delete(ctx, first.Address.ID).Success)
	assert.Nil(t, book.Selected(ctx))
	assert.Equal(t, 0, book.Count(ctx))
}

func TestDeleteUnknownIDFails(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	result := book.Delete(ctx, "addr_missing")
	assert.False(t, result.Success)
}

func TestSetSelectedMovesDefault(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	book.Create(ctx, validInput("Asha"))
	second := book.Create(ctx, validInput("Ravi"))

	require.True(t, book.SetSelected(ctx, second.Address.ID).Success)

	addresses := book.List(ctx)
	assertSingleDefault(t, addresses)
	assert.Equal(t, second.Address.ID, addresses[0].ID)

	assert.False(t, book.SetSelected(ctx, "addr_missing").Success)
}

func TestInvariantHoldsAcrossOperationSequence(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	a := book.Create(ctx, validInput("A"))
	b := book.Create(ctx, validInput("B"))
	c := validInput("C")
	c.IsDefault = true
	created := book.Create(ctx, c)

	book.SetSelected(ctx, a.Address.ID)
	book.Delete(ctx, a.Address.ID)
	flag := true
	book.Update(ctx, Update{ID: b.Address.ID, IsDefault: &flag})
	book.Delete(ctx, created.Address.ID)

	addresses := book.List(ctx)
	if len(addresses) > 0 {
		assertSingleDefault(t, addresses)
	}
	if sel := book.Selected(ctx); sel != nil {
		found := false
		for _, addr := range addresses {
			if addr.ID == sel.ID {
				found = true
			}
		}
		assert.True(t, found, "selection resolves to a live record")
	}
}

func TestValidationRejectsBadPincode(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	input := validInput("Asha")
	input.Pincode = "012345"
	result := book.Create(ctx, input)
	assert.False(t, result.Success)
}

func TestOperationsWithoutStorageFail(t *testing.T) {
	ctx := context.Background()
	book := NewBook(kvstore.Unavailable{}, events.NewBus())

	assert.False(t, book.Create(ctx, validInput("Asha")).Success)
	assert.False(t, book.Delete(ctx, "addr_x").Success)
	assert.False(t, book.SetSelected(ctx, "addr_x").Success)
	assert.Empty(t, book.List(ctx))
	assert.Nil(t, book.Selected(ctx))
}
