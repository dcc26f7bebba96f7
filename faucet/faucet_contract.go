package faucet

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/zdt-labs/tokenshop-contract/common"
)

const (
	tokenKey    = "faucetToken"
	dripKey     = "dripAmount"
	cooldownKey = "cooldownPeriod"

	lastDripPrefix = 'l'
)

var errCooldown = "cooldown period has not passed"

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner      interop.Hash160
		token      interop.Hash160
		dripAmount int
		cooldown   int
	})

	if len(args.token) != interop.Hash160Len {
		panic("incorrect length of token script hash")
	}
	if args.dripAmount <= 0 {
		panic("drip amount must be positive")
	}
	if args.cooldown < 0 {
		panic("cooldown must not be negative")
	}

	common.SetOwner(ctx, args.owner)
	storage.Put(ctx, tokenKey, args.token)
	storage.Put(ctx, dripKey, args.dripAmount)
	storage.Put(ctx, cooldownKey, args.cooldown)

	runtime.Log("faucet contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("faucet contract updated")
}

// RequestTokens mints the drip amount of ZDT to the account. An account
// can request once per cooldown period. The faucet contract must be
// registered as a minter on the token contract.
//
// Produces TokensDripped notification.
func RequestTokens(account interop.Hash160) {
	ctx := storage.GetContext()
	common.RequireNotPaused(ctx)
	common.CheckWitness(account)

	now := runtime.GetTime()
	key := lastDripKey(account)
	last := common.GetInt(ctx, key)
	cooldown := common.GetInt(ctx, cooldownKey)
	if last != 0 && now < last+cooldown {
		panic(errCooldown)
	}

	amount := common.GetInt(ctx, dripKey)
	tokenHash := storage.Get(ctx, tokenKey).(interop.Hash160)
	contract.Call(tokenHash, "mint", contract.All, account, amount)

	storage.Put(ctx, key, now)

	runtime.Notify("TokensDripped", account, amount)
}

// CanRequest returns true if the account's cooldown period has passed.
func CanRequest(account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	last := common.GetInt(ctx, lastDripKey(account))
	if last == 0 {
		return true
	}
	return runtime.GetTime() >= last+common.GetInt(ctx, cooldownKey)
}

// LastDripOf returns the block time (ms) of the account's last request,
// zero if it never requested.
func LastDripOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, lastDripKey(account))
}

// DripAmount returns the amount of ZDT minted per request.
func DripAmount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, dripKey)
}

// CooldownPeriod returns the minimum time (ms) between two requests of
// one account.
func CooldownPeriod() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, cooldownKey)
}

// SetDripAmount replaces the amount minted per request. Can be invoked
// only by the contract owner.
func SetDripAmount(amount int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if amount <= 0 {
		panic("drip amount must be positive")
	}
	storage.Put(ctx, dripKey, amount)
}

// SetCooldownPeriod replaces the cooldown period (ms). Can be invoked
// only by the contract owner.
func SetCooldownPeriod(cooldown int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if cooldown < 0 {
		panic("cooldown must not be negative")
	}
	storage.Put(ctx, cooldownKey, cooldown)
}

// FaucetToken returns the script hash of the minted NEP-17 token.
func FaucetToken() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, tokenKey).(interop.Hash160)
}

// Pause freezes requests. Can be invoked only by the contract owner.
func Pause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)
	common.SetPaused(ctx, true)
	runtime.Log("faucet contract paused")
}

// Unpause resumes requests. Can be invoked only by the contract owner.
func Unpause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)
	common.SetPaused(ctx, false)
	runtime.Log("faucet contract unpaused")
}

// IsPaused returns true if requests are paused.
func IsPaused() bool {
	ctx := storage.GetReadOnlyContext()
	return common.IsPaused(ctx)
}

// Owner returns the contract owner.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return common.Owner(ctx)
}

// Version returns version of the contract.
func Version() int {
	return common.Version
}

func lastDripKey(account interop.Hash160) []byte {
	return append([]byte{lastDripPrefix}, account...)
}
