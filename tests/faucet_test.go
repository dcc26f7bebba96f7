package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/zdt-labs/tokenshop-contract/common"
)

const faucetPath = "../faucet"

const (
	dripAmount = int64(1000)
	// One hour, far beyond what a test chain can wait out.
	cooldownMs = int64(3_600_000)
)

func deployFaucetContract(t *testing.T, e *neotest.Executor, tokenHash util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, faucetPath, path.Join(faucetPath, "config.yml"))
	e.DeployContract(t, c, []any{e.CommitteeHash, tokenHash, dripAmount, cooldownMs})
	return c.Hash
}

func newFaucetInvoker(t *testing.T) (*neotest.ContractInvoker, *neotest.ContractInvoker) {
	e := newExecutor(t)
	tokenHash := deployTokenContract(t, e)
	faucetHash := deployFaucetContract(t, e, tokenHash)
	return e.CommitteeInvoker(faucetHash), e.CommitteeInvoker(tokenHash)
}

func TestFaucetDeploy(t *testing.T) {
	c, token := newFaucetInvoker(t)

	c.Invoke(t, token.Hash.BytesBE(), "faucetToken")
	c.Invoke(t, dripAmount, "dripAmount")
	c.Invoke(t, cooldownMs, "cooldownPeriod")
	c.Invoke(t, false, "isPaused")
}

func TestFaucetRequest(t *testing.T) {
	c, token := newFaucetInvoker(t)

	acc := c.NewAccount(t)
	accHash := acc.ScriptHash()
	cAcc := c.WithSigners(acc)

	// Requesting on behalf of someone else is refused.
	cAcc.InvokeFail(t, common.ErrWitnessFailed, "requestTokens", c.CommitteeHash)

	// The faucet mints, so it has to be registered as a minter first.
	cAcc.InvokeFail(t, "not authorized to mint", "requestTokens", accHash)
	token.Invoke(t, stackitem.Null{}, "addMinter", c.Hash)

	h := cAcc.Invoke(t, stackitem.Null{}, "requestTokens", accHash)
	t0 := blockTime(t, c.Executor)
	checkEvent(t, cAcc.CheckHalt(t, h), "TokensDripped",
		stackitem.NewByteArray(accHash.BytesBE()),
		stackitem.Make(dripAmount))

	require.Equal(t, dripAmount, tokenBalance(t, token, accHash))
	c.Invoke(t, t0, "lastDripOf", accHash)
	c.Invoke(t, false, "canRequest", accHash)
	cAcc.InvokeFail(t, "cooldown period has not passed", "requestTokens", accHash)

	// A zero cooldown removes the wait entirely.
	c.Invoke(t, stackitem.Null{}, "setCooldownPeriod", int64(0))
	c.Invoke(t, true, "canRequest", accHash)
	cAcc.Invoke(t, stackitem.Null{}, "requestTokens", accHash)
	require.Equal(t, 2*dripAmount, tokenBalance(t, token, accHash))
}

func TestFaucetConfig(t *testing.T) {
	c, _ := newFaucetInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	cAcc.InvokeFail(t, common.ErrNotOwner, "setDripAmount", int64(1))
	cAcc.InvokeFail(t, common.ErrNotOwner, "setCooldownPeriod", int64(1))
	c.InvokeFail(t, "drip amount must be positive", "setDripAmount", int64(0))
	c.InvokeFail(t, "cooldown must not be negative", "setCooldownPeriod", int64(-1))

	c.Invoke(t, stackitem.Null{}, "setDripAmount", int64(5))
	c.Invoke(t, 5, "dripAmount")
	c.Invoke(t, stackitem.Null{}, "setCooldownPeriod", int64(60_000))
	c.Invoke(t, 60_000, "cooldownPeriod")
}

func TestFaucetPause(t *testing.T) {
	c, token := newFaucetInvoker(t)

	token.Invoke(t, stackitem.Null{}, "addMinter", c.Hash)

	acc := c.NewAccount(t)
	accHash := acc.ScriptHash()
	cAcc := c.WithSigners(acc)

	cAcc.InvokeFail(t, common.ErrNotOwner, "pause")
	c.Invoke(t, stackitem.Null{}, "pause")
	c.Invoke(t, true, "isPaused")

	cAcc.InvokeFail(t, common.ErrPaused, "requestTokens", accHash)

	c.Invoke(t, stackitem.Null{}, "unpause")
	cAcc.Invoke(t, stackitem.Null{}, "requestTokens", accHash)
	require.Equal(t, dripAmount, tokenBalance(t, token, accHash))
}
