package repositories

import "context"

// Storage keys mirroring the client's on-device key-value slots. Values are
// JSON-serialized blobs under their respective keys.
const (
	KeyNextJourney    = "next_journey"
	KeyRecentSearches = "recent_searches"
)

// KVReader defines read operations on the device-scoped key-value store.
type KVReader interface {
	// Get returns the JSON blob stored under the key for the device, or
	// apperrors.ErrNotFound when the slot is empty.
	Get(ctx context.Context, deviceID, key string) ([]byte, error)
}

// KVWriter defines write operations on the device-scoped key-value store.
type KVWriter interface {
	// Put atomically replaces the whole blob under the key.
	Put(ctx context.Context, deviceID, key string, value []byte) error

	// Delete clears the slot; no-op when it was already empty.
	Delete(ctx context.Context, deviceID, key string) error
}

// KVRepositoryFacade combines the key-value repository interfaces.
type KVRepositoryFacade interface {
	KVReader
	KVWriter
}
