package nftrewards

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/zdt-labs/tokenshop-contract/common"
)

// RewardToken is the state of a single achievement NFT.
type RewardToken struct {
	// ID is a 32-byte token id derived from the recipient and mint serial.
	ID []byte
	// Owner of the token.
	Owner interop.Hash160
	// Achievement label the token was minted for.
	Achievement string
	// MintedAt is the mint block time (ms).
	MintedAt int
}

const (
	symbol = "ZAN"

	totalSupplyKey = "totalSupply"
	serialKey      = "mintSerial"

	prefixToken        = 't'
	prefixBalance      = 'b'
	prefixAccountToken = 'o'
)

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
	runtime.Log("nft rewards contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("nft rewards contract updated")
}

// Symbol is a NEP-11 standard method that returns the achievement NFT
// symbol.
func Symbol() string {
	return symbol
}

// Decimals is a NEP-11 standard method, always zero for non-divisible
// tokens.
func Decimals() int {
	return 0
}

// TotalSupply is a NEP-11 standard method that returns the number of
// minted achievement NFTs.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalSupplyKey)
}

// OwnerOf is a NEP-11 standard method that returns the owner of a token.
func OwnerOf(tokenID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getToken(ctx, tokenID).Owner
}

// Properties is a NEP-11 standard method that returns token metadata.
func Properties(tokenID []byte) map[string]interface{} {
	ctx := storage.GetReadOnlyContext()
	t := getToken(ctx, tokenID)
	return map[string]interface{}{
		"name":        std.Base58Encode(t.ID),
		"achievement": t.Achievement,
		"mintedAt":    t.MintedAt,
	}
}

// BalanceOf is a NEP-11 standard method that returns the number of
// tokens owned by the account.
func BalanceOf(owner interop.Hash160) int {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, append([]byte{prefixBalance}, owner...))
}

// Tokens is a NEP-11 standard method that returns an iterator over all
// minted token ids.
func Tokens() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixToken}, storage.ValuesOnly|storage.DeserializeValues|storage.PickField0)
}

// TokensOf is a NEP-11 standard method that returns an iterator over the
// account's token ids.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...), storage.ValuesOnly)
}

// Transfer is a NEP-11 standard method that moves a token to another
// account. Can be invoked only by the token owner.
func Transfer(to interop.Hash160, tokenID []byte, data interface{}) bool {
	if len(to) != interop.Hash160Len {
		panic("invalid receiver")
	}
	ctx := storage.GetContext()
	t := getToken(ctx, tokenID)
	from := t.Owner
	if !runtime.CheckWitness(from) {
		return false
	}
	if !common.BytesEqual(from, to) {
		t.Owner = to
		common.SetSerialized(ctx, tokenKey(tokenID), t)

		updateBalance(ctx, tokenID, from, -1)
		updateBalance(ctx, tokenID, to, +1)
	}
	postTransfer(from, to, tokenID, data)
	return true
}

// MintReward mints an achievement NFT to the account. Can be invoked
// only by the contract owner.
//
// Produces Transfer and RewardMinted notifications.
func MintReward(to interop.Hash160, achievement string) []byte {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if len(to) != interop.Hash160Len {
		panic("invalid receiver")
	}

	serial := common.GetInt(ctx, serialKey) + 1
	storage.Put(ctx, serialKey, serial)

	id := crypto.Sha256(append(to, []byte(std.Itoa(serial, 10))...))
	t := RewardToken{
		ID:          id,
		Owner:       to,
		Achievement: achievement,
		MintedAt:    runtime.GetTime(),
	}
	common.SetSerialized(ctx, tokenKey(id), t)

	updateBalance(ctx, id, to, +1)
	storage.Put(ctx, totalSupplyKey, common.GetInt(ctx, totalSupplyKey)+1)

	postTransfer(nil, to, id, nil)
	runtime.Notify("RewardMinted", to, []byte(id), achievement)
	return id
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

// postTransfer sends Transfer notification to the network and calls
// onNEP11Payment if the receiver is a contract.
func postTransfer(from, to interop.Hash160, tokenID []byte, data interface{}) {
	runtime.Notify("Transfer", from, to, 1, tokenID)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP11Payment", contract.All, from, 1, tokenID, data)
	}
}

func updateBalance(ctx storage.Context, tokenID []byte, acc interop.Hash160, diff int) {
	balanceKey := append([]byte{prefixBalance}, acc...)
	balance := common.GetInt(ctx, balanceKey) + diff
	if balance == 0 {
		storage.Delete(ctx, balanceKey)
	} else {
		storage.Put(ctx, balanceKey, balance)
	}

	accountTokenKey := append(append([]byte{prefixAccountToken}, acc...), tokenID...)
	if diff < 0 {
		storage.Delete(ctx, accountTokenKey)
	} else {
		storage.Put(ctx, accountTokenKey, tokenID)
	}
}

func getToken(ctx storage.Context, tokenID []byte) RewardToken {
	data := storage.Get(ctx, tokenKey(tokenID))
	if data == nil {
		panic("token not found")
	}
	return std.Deserialize(data.([]byte)).(RewardToken)
}

func tokenKey(tokenID []byte) []byte {
	return append([]byte{prefixToken}, tokenID...)
}
