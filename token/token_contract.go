package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/zdt-labs/tokenshop-contract/common"
)

// Token holds all token info.
type Token struct {
	// Ticker symbol
	Symbol string
	// Amount of decimals
	Decimals int
	// Storage key for circulation value
	CirculationKey string
}

const (
	symbol      = "ZDT"
	decimals    = 8
	circulation = "TotalSupply"

	// InitialSupply is minted to the contract owner on deploy.
	InitialSupply = 1_000_000 * 1_0000_0000
	// MaxSupply caps the total amount of ZDT that can ever be minted.
	MaxSupply = 10_000_000 * 1_0000_0000
)

const (
	balancePrefix = 'b'
	minterPrefix  = 'm'
)

var (
	errNotMinter        = "not authorized to mint"
	errExceedsMaxSupply = "exceeds max supply"
)

var token Token

func init() {
	token = Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner interop.Hash160
	})

	common.SetOwner(ctx, args.owner)

	// The whole initial supply belongs to the owner.
	storage.Put(ctx, balanceKey(args.owner), InitialSupply)
	storage.Put(ctx, token.CirculationKey, InitialSupply)
	runtime.Notify("Transfer", interop.Hash160(nil), args.owner, InitialSupply)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Symbol is a NEP-17 standard method that returns ZDT token symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of ZDT
// balances.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of ZDT
// in circulation.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, token.CirculationKey)
}

// BalanceOf is a NEP-17 standard method that returns ZDT balance of the
// specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, balanceKey(account))
}

// Transfer is a NEP-17 standard method that transfers ZDT from one account
// to another. Can be invoked by the account owner or by a contract moving
// its own funds.
//
// Produces Transfer notification.
func Transfer(from, to interop.Hash160, amount int, data interface{}) bool {
	ctx := storage.GetContext()
	common.RequireNotPaused(ctx)
	return transfer(ctx, from, to, amount)
}

// Mint creates amount of ZDT on the specified account. Can be invoked by
// the contract owner or by a registered minter (an account witness or a
// calling contract). Total supply can not exceed MaxSupply.
//
// Produces Mint and Transfer notifications.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.RequireNotPaused(ctx)

	if amount <= 0 {
		panic("amount must be positive")
	}
	if !canMint(ctx) {
		panic(errNotMinter)
	}

	supply := common.GetInt(ctx, token.CirculationKey)
	if supply+amount > MaxSupply {
		panic(errExceedsMaxSupply)
	}

	addToBalance(ctx, to, amount)
	storage.Put(ctx, token.CirculationKey, supply+amount)

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
	runtime.Notify("Mint", to, amount)
}

// AddMinter authorizes an account or a contract to mint ZDT. Can be
// invoked only by the contract owner.
//
// Produces MinterAdded notification.
func AddMinter(minter interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if len(minter) != interop.Hash160Len {
		panic("incorrect length of minter script hash")
	}

	storage.Put(ctx, minterKey(minter), []byte{1})
	runtime.Notify("MinterAdded", minter)
}

// RemoveMinter revokes minting rights from an account or a contract. Can
// be invoked only by the contract owner.
//
// Produces MinterRemoved notification.
func RemoveMinter(minter interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	storage.Delete(ctx, minterKey(minter))
	runtime.Notify("MinterRemoved", minter)
}

// IsMinter returns true if the account is a registered minter.
func IsMinter(account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, minterKey(account)) != nil
}

// Pause stops transfers and minting. Can be invoked only by the contract
// owner.
func Pause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)
	common.SetPaused(ctx, true)
	runtime.Log("token contract paused")
}

// Unpause resumes transfers and minting. Can be invoked only by the
// contract owner.
func Unpause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)
	common.SetPaused(ctx, false)
	runtime.Log("token contract unpaused")
}

// IsPaused returns true if transfers and minting are paused.
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

func transfer(ctx storage.Context, from, to interop.Hash160, amount int) bool {
	if amount < 0 || len(to) != interop.Hash160Len || !isUsableAddress(from) {
		runtime.Log("bad transfer arguments")
		return false
	}

	fromKey := balanceKey(from)
	fromBalance := common.GetInt(ctx, fromKey)
	if fromBalance < amount {
		runtime.Log("not enough assets")
		return false
	}

	if fromBalance == amount {
		storage.Delete(ctx, fromKey)
	} else {
		storage.Put(ctx, fromKey, fromBalance-amount)
	}

	addToBalance(ctx, to, amount)

	runtime.Notify("Transfer", from, to, amount)
	return true
}

// isUsableAddress checks if the sender is either a witnessed account or
// the calling contract moving its own funds.
func isUsableAddress(addr interop.Hash160) bool {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return true
		}

		callingScriptHash := runtime.GetCallingScriptHash()
		if common.BytesEqual(callingScriptHash, addr) {
			return true
		}
	}

	return false
}

// canMint checks the mint authorization: the owner witness, a registered
// minter witness or a registered minter contract calling in.
func canMint(ctx storage.Context) bool {
	if runtime.CheckWitness(common.Owner(ctx)) {
		return true
	}

	callingScriptHash := runtime.GetCallingScriptHash()
	if storage.Get(ctx, minterKey(callingScriptHash)) != nil {
		return true
	}

	it := storage.Find(ctx, []byte{minterPrefix}, storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		minter := iterator.Value(it).(interop.Hash160)
		if runtime.CheckWitness(minter) {
			return true
		}
	}

	return false
}

func addToBalance(ctx storage.Context, acc interop.Hash160, amount int) {
	key := balanceKey(acc)
	storage.Put(ctx, key, common.GetInt(ctx, key)+amount)
}

func balanceKey(acc interop.Hash160) []byte {
	return append([]byte{balancePrefix}, acc...)
}

func minterKey(acc interop.Hash160) []byte {
	return append([]byte{minterPrefix}, acc...)
}
