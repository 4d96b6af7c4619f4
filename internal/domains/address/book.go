package address

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"eversol-backend/internal/kvstore"
	"eversol-backend/pkg/events"
	"eversol-backend/pkg/logger"
)

const msgStorageUnavailable = "Not available without durable storage"

// Book maintains the address collection and the selected-address pointer.
// Invariants held on every write: at most one default once the collection is
// non-empty, and the pointer always resolves to a live record (falling back
// default → first → none).
type Book struct {
	store kvstore.Store
	bus   *events.Bus
}

func NewBook(store kvstore.Store, bus *events.Bus) *Book {
	return &Book{store: store, bus: bus}
}

// UpdateEventName returns the change event published after every mutation.
func (b *Book) UpdateEventName() string {
	return events.AddressUpdated
}

// List returns all addresses, default first, then most recently updated.
func (b *Book) List(ctx context.Context) []Address {
	raw, ok := b.store.Get(ctx, StorageKey)
	if !ok {
		return []Address{}
	}

	var addresses []Address
	if err := json.Unmarshal([]byte(raw), &addresses); err != nil {
		logger.Error("address: failed to decode stored collection", err)
		return []Address{}
	}

	sort.SliceStable(addresses, func(i, j int) bool {
		if addresses[i].IsDefault != addresses[j].IsDefault {
			return addresses[i].IsDefault
		}
		return addresses[i].UpdatedAt.After(addresses[j].UpdatedAt)
	})
	return addresses
}

// Count returns the number of saved addresses.
func (b *Book) Count(ctx context.Context) int {
	return len(b.List(ctx))
}

// Selected resolves the current selection: the pointed-at record if it still
// exists, else the default, else the first, else nil.
func (b *Book) Selected(ctx context.Context) *Address {
	addresses := b.List(ctx)
	if len(addresses) == 0 {
		return nil
	}

	if selectedID, ok := b.store.Get(ctx, SelectedKey); ok {
		for i := range addresses {
			if addresses[i].ID == selectedID {
				return &addresses[i]
			}
		}
	}

	for i := range addresses {
		if addresses[i].IsDefault {
			return &addresses[i]
		}
	}
	return &addresses[0]
}

// Create inserts a new address with a generated id and timestamps. The first
// address ever added becomes the default; a new default clears the flag on
// every other record and captures the selection pointer.
func (b *Book) Create(ctx context.Context, input NewAddress) SaveResult {
	if !kvstore.Available(b.store) {
		return SaveResult{Success: false, Message: msgStorageUnavailable}
	}
	if err := input.Validate(); err != nil {
		return SaveResult{Success: false, Message: err.Error()}
	}

	addresses := b.List(ctx)
	now := time.Now()

	record := Address{
		ID:           "addr_" + uuid.NewString(),
		Name:         input.Name,
		Phone:        input.Phone,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		Pincode:      input.Pincode,
		IsDefault:    input.IsDefault,
		Type:         input.Type,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if len(addresses) == 0 || input.IsDefault {
		record.IsDefault = true
		for i := range addresses {
			addresses[i].IsDefault = false
		}
	}

	addresses = append(addresses, record)
	b.persist(ctx, addresses)

	if record.IsDefault {
		b.store.Set(ctx, SelectedKey, record.ID)
	}
	b.bus.Publish(events.AddressUpdated)

	return SaveResult{Success: true, Address: &record}
}

// Update merges fields onto an existing record, preserving CreatedAt and
// refreshing UpdatedAt. Default exclusivity is enforced when the update sets
// the flag.
func (b *Book) Update(ctx context.Context, input Update) SaveResult {
	if !kvstore.Available(b.store) {
		return SaveResult{Success: false, Message: msgStorageUnavailable}
	}
	if err := input.Validate(); err != nil {
		return SaveResult{Success: false, Message: err.Error()}
	}

	addresses := b.List(ctx)
	index := -1
	for i := range addresses {
		if addresses[i].ID == input.ID {
			index = i
			break
		}
	}
	if index < 0 {
		return SaveResult{Success: false, Message: "Address not found"}
	}

	updated := input.apply(addresses[index])
	updated.UpdatedAt = time.Now()

	if updated.IsDefault {
		for i := range addresses {
			if i != index {
				addresses[i].IsDefault = false
			}
		}
	}
	addresses[index] = updated

	b.persist(ctx, addresses)
	if updated.IsDefault {
		b.store.Set(ctx, SelectedKey, updated.ID)
	}
	b.bus.Publish(events.AddressUpdated)

	return SaveResult{Success: true, Address: &updated}
}

// Delete removes the record. When the deleted record was selected, the
// pointer is repaired to the default, then the first remaining record, then
// cleared.
func (b *Book) Delete(ctx context.Context, id string) Result {
	if !kvstore.Available(b.store) {
		return Result{Success: false, Message: msgStorageUnavailable}
	}

	addresses := b.List(ctx)
	kept := make([]Address, 0, len(addresses))
	for _, a := range addresses {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(addresses) {
		return Result{Success: false, Message: "Address not found"}
	}

	if selectedID, ok := b.store.Get(ctx, SelectedKey); ok && selectedID == id {
		replacement := ""
		for _, a := range kept {
			if a.IsDefault {
				replacement = a.ID
				break
			}
		}
		if replacement == "" && len(kept) > 0 {
			replacement = kept[0].ID
		}
		if replacement != "" {
			b.store.Set(ctx, SelectedKey, replacement)
		} else {
			b.store.Remove(ctx, SelectedKey)
		}
	}

	b.persist(ctx, kept)
	b.bus.Publish(events.AddressUpdated)

	return Result{Success: true}
}

// SetSelected points the selection at id and makes it the default,
// clearing the flag everywhere else.
func (b *Book) SetSelected(ctx context.Context, id string) Result {
	if !kvstore.Available(b.store) {
		return Result{Success: false, Message: msgStorageUnavailable}
	}

	addresses := b.List(ctx)
	found := false
	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == id
		if addresses[i].IsDefault {
			found = true
		}
	}
	if !found {
		return Result{Success: false, Message: "Address not found"}
	}

	b.persist(ctx, addresses)
	b.store.Set(ctx, SelectedKey, id)
	b.bus.Publish(events.AddressUpdated)

	return Result{Success: true}
}

func (b *Book) persist(ctx context.Context, addresses []Address) {
	data, err := json.Marshal(addresses)
	if err != nil {
		logger.Error("address: failed to encode collection", err)
		return
	}
	b.store.Set(ctx, StorageKey, string(data))
}
