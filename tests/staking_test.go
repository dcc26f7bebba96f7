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

const stakingPath = "../staking"

const (
	// 1% per day in basis points.
	dailyRate       = int64(100)
	rateDenominator = int64(10000)
	dayMs           = int64(86_400_000)

	// bigStake * dailyRate is exactly one reward unit per millisecond,
	// so expected rewards derived from block timestamps are exact.
	bigStake = int64(8_640_000_000)

	poolFunding = int64(100_000 * 1_0000_0000)
)

func deployStakingContract(t *testing.T, e *neotest.Executor, tokenHash util.Uint160, rate int64) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, stakingPath, path.Join(stakingPath, "config.yml"))
	e.DeployContract(t, c, []any{e.CommitteeHash, tokenHash, rate})
	return c.Hash
}

// newStakingInvoker deploys the token and the pool and funds the pool
// balance rewards are paid from.
func newStakingInvoker(t *testing.T, rate int64) (*neotest.ContractInvoker, *neotest.ContractInvoker) {
	e := newExecutor(t)
	tokenHash := deployTokenContract(t, e)
	stakingHash := deployStakingContract(t, e, tokenHash, rate)

	token := e.CommitteeInvoker(tokenHash)
	token.Invoke(t, true, "transfer", e.CommitteeHash, stakingHash, poolFunding, nil)

	return e.CommitteeInvoker(stakingHash), token
}

// fundedAccount creates an account owning the given amount of ZDT.
func fundedAccount(t *testing.T, token *neotest.ContractInvoker, funds int64) neotest.Signer {
	acc := token.NewAccount(t)
	token.Invoke(t, true, "transfer", token.CommitteeHash, acc.ScriptHash(), funds, nil)
	return acc
}

func tokenBalance(t *testing.T, token *neotest.ContractInvoker, acc util.Uint160) int64 {
	res, err := token.TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	return res.Pop().BigInt().Int64()
}

func stakeInfo(t *testing.T, c *neotest.ContractInvoker, acc util.Uint160) (int64, int64) {
	res, err := c.TestInvoke(t, "getStakeInfo", acc)
	require.NoError(t, err)
	items := res.Pop().Array()
	amount, err := items[0].TryInteger()
	require.NoError(t, err)
	ts, err := items[1].TryInteger()
	require.NoError(t, err)
	return amount.Int64(), ts.Int64()
}

func expectedReward(amount, rate, fromMs, toMs int64) int64 {
	return amount * rate * (toMs - fromMs) / (rateDenominator * dayMs)
}

func TestStakingDeploy(t *testing.T) {
	c, token := newStakingInvoker(t, dailyRate)

	c.Invoke(t, dailyRate, "rewardRate")
	c.Invoke(t, 0, "totalStaked")
	c.Invoke(t, false, "isPaused")
	c.Invoke(t, token.Hash.BytesBE(), "stakingToken")
}

func TestStakingSetRewardRate(t *testing.T) {
	c, _ := newStakingInvoker(t, dailyRate)

	h := c.Invoke(t, stackitem.Null{}, "setRewardRate", int64(200))
	checkEvent(t, c.CheckHalt(t, h), "RewardRateChanged", stackitem.Make(200))
	c.Invoke(t, 200, "rewardRate")

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrNotOwner, "setRewardRate", int64(300))
	c.InvokeFail(t, "reward rate must not be negative", "setRewardRate", int64(-1))
}

func TestStake(t *testing.T) {
	c, token := newStakingInvoker(t, dailyRate)

	staker := fundedAccount(t, token, bigStake*2)
	stakerHash := staker.ScriptHash()
	cStaker := c.WithSigners(staker)

	cStaker.InvokeFail(t, "amount must be positive", "stake", stakerHash, int64(0))

	h := cStaker.Invoke(t, stackitem.Null{}, "stake", stakerHash, bigStake)
	t0 := blockTime(t, c.Executor)
	checkEvent(t, cStaker.CheckHalt(t, h), "Staked",
		stackitem.NewByteArray(stakerHash.BytesBE()),
		stackitem.Make(bigStake))

	amount, ts := stakeInfo(t, c, stakerHash)
	require.Equal(t, bigStake, amount)
	require.Equal(t, t0, ts)
	c.Invoke(t, bigStake, "totalStaked")
	require.Equal(t, bigStake, tokenBalance(t, token, stakerHash))
	require.Equal(t, poolFunding+bigStake, tokenBalance(t, token, c.Hash))

	// Re-staking settles the accrual of the old basis first.
	skipBlocks(t, c.Executor, 5)
	cStaker.Invoke(t, stackitem.Null{}, "stake", stakerHash, bigStake)
	t1 := blockTime(t, c.Executor)

	amount, ts = stakeInfo(t, c, stakerHash)
	require.Equal(t, 2*bigStake, amount)
	require.Equal(t, t1, ts)
	c.Invoke(t, expectedReward(bigStake, dailyRate, t0, t1), "rewards", stakerHash)
	c.Invoke(t, 2*bigStake, "totalStaked")

	// A staker without funds is rejected by the token, the pool reports
	// its own error.
	pauper := c.NewAccount(t)
	c.WithSigners(pauper).InvokeFail(t, "token transfer failed", "stake", pauper.ScriptHash(), int64(10))
}

func TestUnstake(t *testing.T) {
	c, token := newStakingInvoker(t, dailyRate)

	staker := fundedAccount(t, token, bigStake)
	stakerHash := staker.ScriptHash()
	cStaker := c.WithSigners(staker)

	cStaker.InvokeFail(t, "amount must be positive", "unstake", stakerHash, int64(0))
	cStaker.InvokeFail(t, "insufficient stake", "unstake", stakerHash, int64(1))

	cStaker.Invoke(t, stackitem.Null{}, "stake", stakerHash, bigStake)
	t0 := blockTime(t, c.Executor)

	cStaker.InvokeFail(t, "insufficient stake", "unstake", stakerHash, bigStake+1)

	skipBlocks(t, c.Executor, 5)
	h := cStaker.Invoke(t, stackitem.Null{}, "unstake", stakerHash, bigStake)
	t1 := blockTime(t, c.Executor)
	reward := expectedReward(bigStake, dailyRate, t0, t1)
	require.Positive(t, reward)
	checkEvent(t, cStaker.CheckHalt(t, h), "Unstaked",
		stackitem.NewByteArray(stakerHash.BytesBE()),
		stackitem.Make(bigStake),
		stackitem.Make(reward))

	amount, _ := stakeInfo(t, c, stakerHash)
	require.EqualValues(t, 0, amount)
	c.Invoke(t, 0, "totalStaked")
	c.Invoke(t, 0, "rewards", stakerHash)
	require.Equal(t, bigStake+reward, tokenBalance(t, token, stakerHash))
}

func TestUnstakePartial(t *testing.T) {
	c, token := newStakingInvoker(t, dailyRate)

	staker := fundedAccount(t, token, bigStake)
	stakerHash := staker.ScriptHash()
	cStaker := c.WithSigners(staker)

	cStaker.Invoke(t, stackitem.Null{}, "stake", stakerHash, bigStake)
	t0 := blockTime(t, c.Executor)

	skipBlocks(t, c.Executor, 5)
	part := bigStake / 4
	h := cStaker.Invoke(t, stackitem.Null{}, "unstake", stakerHash, part)
	t1 := blockTime(t, c.Executor)
	reward := expectedReward(bigStake, dailyRate, t0, t1)
	checkEvent(t, cStaker.CheckHalt(t, h), "Unstaked",
		stackitem.NewByteArray(stakerHash.BytesBE()),
		stackitem.Make(part),
		stackitem.Make(reward))

	amount, ts := stakeInfo(t, c, stakerHash)
	require.Equal(t, bigStake-part, amount)
	require.Equal(t, t1, ts)
	c.Invoke(t, bigStake-part, "totalStaked")
	c.Invoke(t, 0, "rewards", stakerHash)
	require.Equal(t, part+reward, tokenBalance(t, token, stakerHash))
}

func TestUnstakeRoundTrip(t *testing.T) {
	c, token := newStakingInvoker(t, dailyRate)

	// With a stake this small the truncating accrual formula yields
	// exactly zero until a whole day has passed.
	staker := fundedAccount(t, token, 100)
	stakerHash := staker.ScriptHash()
	cStaker := c.WithSigners(staker)

	cStaker.Invoke(t, stackitem.Null{}, "stake", stakerHash, int64(100))
	h := cStaker.Invoke(t, stackitem.Null{}, "unstake", stakerHash, int64(100))
	checkEvent(t, cStaker.CheckHalt(t, h), "Unstaked",
		stackitem.NewByteArray(stakerHash.BytesBE()),
		stackitem.Make(100),
		stackitem.Make(0))

	amount, _ := stakeInfo(t, c, stakerHash)
	require.EqualValues(t, 0, amount)
	require.EqualValues(t, 100, tokenBalance(t, token, stakerHash))
}

func TestClaimRewards(t *testing.T) {
	c, token := newStakingInvoker(t, dailyRate)

	staker := fundedAccount(t, token, bigStake)
	stakerHash := staker.ScriptHash()
	cStaker := c.WithSigners(staker)

	cStaker.InvokeFail(t, "no rewards to claim", "claimRewards", stakerHash)

	cStaker.Invoke(t, stackitem.Null{}, "stake", stakerHash, bigStake)
	t0 := blockTime(t, c.Executor)

	skipBlocks(t, c.Executor, 5)
	h := cStaker.Invoke(t, stackitem.Null{}, "claimRewards", stakerHash)
	t1 := blockTime(t, c.Executor)
	r1 := expectedReward(bigStake, dailyRate, t0, t1)
	require.Positive(t, r1)
	checkEvent(t, cStaker.CheckHalt(t, h), "RewardsClaimed",
		stackitem.NewByteArray(stakerHash.BytesBE()),
		stackitem.Make(r1))

	c.Invoke(t, 0, "rewards", stakerHash)
	require.Equal(t, r1, tokenBalance(t, token, stakerHash))
	_, ts := stakeInfo(t, c, stakerHash)
	require.Equal(t, t1, ts)

	// The second claim pays only for the second period: settlement
	// neither loses nor duplicates accrual.
	skipBlocks(t, c.Executor, 5)
	h = cStaker.Invoke(t, stackitem.Null{}, "claimRewards", stakerHash)
	t2 := blockTime(t, c.Executor)
	r2 := expectedReward(bigStake, dailyRate, t1, t2)
	checkEvent(t, cStaker.CheckHalt(t, h), "RewardsClaimed",
		stackitem.NewByteArray(stakerHash.BytesBE()),
		stackitem.Make(r2))
	require.Equal(t, expectedReward(bigStake, dailyRate, t0, t2), r1+r2)
}

func TestClaimRewardsTruncation(t *testing.T) {
	c, token := newStakingInvoker(t, dailyRate)

	staker := fundedAccount(t, token, 100)
	stakerHash := staker.ScriptHash()
	cStaker := c.WithSigners(staker)

	// 100 units at 1% per day accrue nothing within a few blocks;
	// an immediate second claim is the idempotence edge from the same
	// truncation.
	cStaker.Invoke(t, stackitem.Null{}, "stake", stakerHash, int64(100))
	cStaker.InvokeFail(t, "no rewards to claim", "claimRewards", stakerHash)
	c.Invoke(t, 0, "getPendingRewards", stakerHash)
	c.Invoke(t, 0, "calculatePendingRewards", stakerHash)
}

func TestStakingBlendedRate(t *testing.T) {
	c, token := newStakingInvoker(t, dailyRate)

	// newRate * stake is one unit per ms, keeping expectations exact.
	const newRate = int64(200)
	stake := bigStake / 2

	staker := fundedAccount(t, token, stake)
	stakerHash := staker.ScriptHash()
	cStaker := c.WithSigners(staker)

	cStaker.Invoke(t, stackitem.Null{}, "stake", stakerHash, stake)
	t0 := blockTime(t, c.Executor)

	skipBlocks(t, c.Executor, 5)
	c.Invoke(t, stackitem.Null{}, "setRewardRate", newRate)

	// The rate change is not prorated: the next settlement applies the
	// current rate to the whole interval since t0.
	skipBlocks(t, c.Executor, 5)
	h := cStaker.Invoke(t, stackitem.Null{}, "claimRewards", stakerHash)
	t1 := blockTime(t, c.Executor)
	checkEvent(t, cStaker.CheckHalt(t, h), "RewardsClaimed",
		stackitem.NewByteArray(stakerHash.BytesBE()),
		stackitem.Make(expectedReward(stake, newRate, t0, t1)))
}

func TestStakingPause(t *testing.T) {
	c, token := newStakingInvoker(t, dailyRate)

	staker := fundedAccount(t, token, bigStake)
	stakerHash := staker.ScriptHash()
	cStaker := c.WithSigners(staker)

	cStaker.Invoke(t, stackitem.Null{}, "stake", stakerHash, bigStake/2)

	cStaker.InvokeFail(t, common.ErrNotOwner, "pause")
	c.Invoke(t, stackitem.Null{}, "pause")
	c.Invoke(t, true, "isPaused")

	cStaker.InvokeFail(t, common.ErrPaused, "stake", stakerHash, int64(1))
	cStaker.InvokeFail(t, common.ErrPaused, "claimRewards", stakerHash)
	// The pause is a global freeze: unstaking is deliberately blocked
	// too, stakers can not exit until the owner unpauses.
	cStaker.InvokeFail(t, common.ErrPaused, "unstake", stakerHash, int64(1))

	// Owner management is not gated by the pause.
	c.Invoke(t, stackitem.Null{}, "setRewardRate", int64(50))

	c.Invoke(t, stackitem.Null{}, "unpause")
	c.Invoke(t, false, "isPaused")
	cStaker.Invoke(t, stackitem.Null{}, "unstake", stakerHash, bigStake/2)
}

func TestStakingTotalStaked(t *testing.T) {
	c, token := newStakingInvoker(t, dailyRate)

	s1 := fundedAccount(t, token, 1000)
	s2 := fundedAccount(t, token, 1000)
	c1 := c.WithSigners(s1)
	c2 := c.WithSigners(s2)

	c1.Invoke(t, stackitem.Null{}, "stake", s1.ScriptHash(), int64(700))
	c2.Invoke(t, stackitem.Null{}, "stake", s2.ScriptHash(), int64(300))
	c.Invoke(t, 1000, "totalStaked")

	c1.Invoke(t, stackitem.Null{}, "unstake", s1.ScriptHash(), int64(200))
	c.Invoke(t, 800, "totalStaked")

	c2.Invoke(t, stackitem.Null{}, "unstake", s2.ScriptHash(), int64(300))
	c.Invoke(t, 500, "totalStaked")
}
