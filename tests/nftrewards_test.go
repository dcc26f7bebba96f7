package tests

import (
	"crypto/sha256"
	"path"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/zdt-labs/tokenshop-contract/common"
)

const nftPath = "../nftrewards"

func newNFTInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	c := neotest.CompileFile(t, e.CommitteeHash, nftPath, path.Join(nftPath, "config.yml"))
	e.DeployContract(t, c, []any{e.CommitteeHash})
	return e.CommitteeInvoker(c.Hash)
}

// rewardTokenID reproduces the id derivation of the contract: the hash
// of the recipient script hash and the decimal mint serial.
func rewardTokenID(owner util.Uint160, serial string) []byte {
	id := sha256.Sum256(append(owner.BytesBE(), []byte(serial)...))
	return id[:]
}

func propertyOf(t *testing.T, c *neotest.ContractInvoker, tokenID []byte, key string) stackitem.Item {
	res, err := c.TestInvoke(t, "properties", tokenID)
	require.NoError(t, err)
	m := res.Pop().Item().(*stackitem.Map)
	i := m.Index(stackitem.Make(key))
	require.True(t, i >= 0, "missing property %s", key)
	return m.Value().([]stackitem.MapElement)[i].Value
}

func TestNFTDeploy(t *testing.T) {
	c := newNFTInvoker(t)

	c.Invoke(t, "ZAN", "symbol")
	c.Invoke(t, 0, "decimals")
	c.Invoke(t, 0, "totalSupply")
	c.InvokeFail(t, "invalid owner", "balanceOf", []byte{1, 2, 3})
	c.InvokeFail(t, "token not found", "ownerOf", []byte{1, 2, 3})
}

func TestNFTMintReward(t *testing.T) {
	c := newNFTInvoker(t)

	acc := c.NewAccount(t)
	accHash := acc.ScriptHash()

	c.WithSigners(acc).InvokeFail(t, common.ErrNotOwner, "mintReward", accHash, "First Purchase")

	id := rewardTokenID(accHash, "1")
	h := c.Invoke(t, id, "mintReward", accHash, "First Purchase")
	t0 := blockTime(t, c.Executor)
	aer := c.CheckHalt(t, h)
	checkEvent(t, aer, "Transfer",
		stackitem.Null{},
		stackitem.NewByteArray(accHash.BytesBE()),
		stackitem.Make(1),
		stackitem.NewByteArray(id))
	checkEvent(t, aer, "RewardMinted",
		stackitem.NewByteArray(accHash.BytesBE()),
		stackitem.NewByteArray(id),
		stackitem.Make("First Purchase"))

	c.Invoke(t, accHash.BytesBE(), "ownerOf", id)
	c.Invoke(t, 1, "balanceOf", accHash)
	c.Invoke(t, 1, "totalSupply")

	require.Equal(t, stackitem.Make("First Purchase"), propertyOf(t, c, id, "achievement"))
	require.Equal(t, stackitem.Make(base58.Encode(id)), propertyOf(t, c, id, "name"))
	require.Equal(t, stackitem.Make(t0), propertyOf(t, c, id, "mintedAt"))

	// The serial makes a second reward for the same account distinct.
	id2 := rewardTokenID(accHash, "2")
	c.Invoke(t, id2, "mintReward", accHash, "First Stake")
	c.Invoke(t, 2, "balanceOf", accHash)
	c.Invoke(t, 2, "totalSupply")

	res, err := c.TestInvoke(t, "tokens")
	require.NoError(t, err)
	require.Equal(t, []stackitem.Item{
		stackitem.NewByteArray(id),
		stackitem.NewByteArray(id2),
	}, iteratorToArray(res.Pop().Value().(*storage.Iterator)))
}

func TestNFTTransfer(t *testing.T) {
	c := newNFTInvoker(t)

	from := c.NewAccount(t)
	fromHash := from.ScriptHash()
	to := c.NewAccount(t)
	toHash := to.ScriptHash()

	id := rewardTokenID(fromHash, "1")
	c.Invoke(t, id, "mintReward", fromHash, "First Purchase")

	// Without the token owner's witness the transfer is refused.
	c.Invoke(t, false, "transfer", toHash, id, nil)
	c.Invoke(t, fromHash.BytesBE(), "ownerOf", id)

	cFrom := c.WithSigners(from)
	h := cFrom.Invoke(t, true, "transfer", toHash, id, nil)
	checkEvent(t, cFrom.CheckHalt(t, h), "Transfer",
		stackitem.NewByteArray(fromHash.BytesBE()),
		stackitem.NewByteArray(toHash.BytesBE()),
		stackitem.Make(1),
		stackitem.NewByteArray(id))

	c.Invoke(t, toHash.BytesBE(), "ownerOf", id)
	c.Invoke(t, 0, "balanceOf", fromHash)
	c.Invoke(t, 1, "balanceOf", toHash)

	res, err := c.TestInvoke(t, "tokensOf", toHash)
	require.NoError(t, err)
	require.Equal(t, []stackitem.Item{stackitem.NewByteArray(id)},
		iteratorToArray(res.Pop().Value().(*storage.Iterator)))
	res, err = c.TestInvoke(t, "tokensOf", fromHash)
	require.NoError(t, err)
	require.Empty(t, iteratorToArray(res.Pop().Value().(*storage.Iterator)))

	// Self-transfer is a no-op that still succeeds.
	cTo := c.WithSigners(to)
	cTo.Invoke(t, true, "transfer", toHash, id, nil)
	c.Invoke(t, 1, "balanceOf", toHash)
}
