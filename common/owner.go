package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const ownerKey = "contractOwner"

var (
	// ErrNotOwner appears when the method must be called by the contract
	// owner but was not.
	ErrNotOwner = "owner witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// by a certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// SetOwner writes the contract owner to the storage. Must be called from
// _deploy only.
func SetOwner(ctx storage.Context, owner interop.Hash160) {
	if len(owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}
	storage.Put(ctx, ownerKey, owner)
}

// Owner returns the contract owner.
func Owner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

// CheckOwnerWitness checks witness of the contract owner.
// It panics with ErrNotOwner message on fail.
func CheckOwnerWitness(ctx storage.Context) {
	if !runtime.CheckWitness(Owner(ctx)) {
		panic(ErrNotOwner)
	}
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	if !runtime.CheckWitness(caller) {
		panic(ErrWitnessFailed)
	}
}
