package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const pauseKey = "contractPaused"

// ErrPaused appears when a method gated by the pause flag is called on
// a paused contract.
var ErrPaused = "contract is paused"

// IsPaused returns true if the contract pause flag is set.
func IsPaused(ctx storage.Context) bool {
	return storage.Get(ctx, pauseKey) != nil
}

// SetPaused sets or drops the contract pause flag.
func SetPaused(ctx storage.Context, paused bool) {
	if paused {
		storage.Put(ctx, pauseKey, []byte{1})
	} else {
		storage.Delete(ctx, pauseKey)
	}
}

// RequireNotPaused panics with ErrPaused if the pause flag is set.
func RequireNotPaused(ctx storage.Context) {
	if IsPaused(ctx) {
		panic(ErrPaused)
	}
}
