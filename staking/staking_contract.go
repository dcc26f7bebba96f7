package staking

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/zdt-labs/tokenshop-contract/common"
)

// StakeInfo stores the stake ledger record of a single account.
type StakeInfo struct {
	// Staked amount in ZDT base units.
	Amount int
	// Block time (ms) of the last accrual settlement for this record.
	Timestamp int
}

const (
	// RateDenominator is the basis-point denominator of the reward rate:
	// rate 100 is 1% of the staked amount per day.
	RateDenominator = 10000
	// msPerDay scales the accrual formula to the millisecond block clock.
	msPerDay = 86_400_000

	tokenKey       = "stakingToken"
	totalStakedKey = "totalStaked"
	rewardRateKey  = "rewardRate"

	stakePrefix  = 's'
	rewardPrefix = 'r'
)

var (
	errInvalidAmount     = "amount must be positive"
	errInsufficientStake = "insufficient stake"
	errNoRewards         = "no rewards to claim"
	errTransferFailed    = "token transfer failed"
)

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
		rewardRate int
	})

	if len(args.token) != interop.Hash160Len {
		panic("incorrect length of token script hash")
	}
	if args.rewardRate < 0 {
		panic("reward rate must not be negative")
	}

	common.SetOwner(ctx, args.owner)
	storage.Put(ctx, tokenKey, args.token)
	storage.Put(ctx, rewardRateKey, args.rewardRate)

	runtime.Log("staking contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("staking contract updated")
}

// Stake locks amount of ZDT in the pool for the staker account. Any
// reward accrued by the previous stake basis is settled first, then the
// basis and its timestamp are replaced. The tokens are pulled from the
// staker within the same transaction, so the staker's witness is
// required.
//
// Produces Staked notification.
func Stake(staker interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.RequireNotPaused(ctx)
	common.CheckWitness(staker)

	if amount <= 0 {
		panic(errInvalidAmount)
	}

	now := currentTimeMs()
	info := settle(ctx, staker, now)

	info.Amount += amount
	info.Timestamp = now
	common.SetSerialized(ctx, stakeKey(staker), info)
	storage.Put(ctx, totalStakedKey, common.GetInt(ctx, totalStakedKey)+amount)

	pullTokens(ctx, staker, amount)

	runtime.Notify("Staked", staker, amount)
}

// Unstake returns amount of staked ZDT to the staker together with the
// whole reward settled so far. Accrual is settled against the old basis
// before the stake is reduced. Partial unstaking is allowed; the record
// is removed when the staked amount reaches zero.
//
// Produces Unstaked notification.
func Unstake(staker interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.RequireNotPaused(ctx)
	common.CheckWitness(staker)

	if amount <= 0 {
		panic(errInvalidAmount)
	}

	now := currentTimeMs()
	info := settle(ctx, staker, now)
	if info.Amount < amount {
		panic(errInsufficientStake)
	}

	info.Amount -= amount
	info.Timestamp = now
	if info.Amount == 0 {
		storage.Delete(ctx, stakeKey(staker))
	} else {
		common.SetSerialized(ctx, stakeKey(staker), info)
	}
	storage.Put(ctx, totalStakedKey, common.GetInt(ctx, totalStakedKey)-amount)

	rKey := rewardKey(staker)
	reward := common.GetInt(ctx, rKey)
	if reward > 0 {
		storage.Delete(ctx, rKey)
	}

	pushTokens(ctx, staker, amount+reward)

	runtime.Notify("Unstaked", staker, amount, reward)
}

// ClaimRewards pays out the whole claimable reward of the staker: the
// settled part plus the accrual since the last settlement. The stake
// itself is left intact, only its accrual timestamp is reset.
//
// Produces RewardsClaimed notification.
func ClaimRewards(staker interop.Hash160) {
	ctx := storage.GetContext()
	common.RequireNotPaused(ctx)
	common.CheckWitness(staker)

	now := currentTimeMs()
	info := getStakeInfo(ctx, staker)
	rate := common.GetInt(ctx, rewardRateKey)

	total := common.GetInt(ctx, rewardKey(staker)) + accrued(info, rate, now)
	if total == 0 {
		panic(errNoRewards)
	}

	storage.Delete(ctx, rewardKey(staker))
	if info.Amount > 0 {
		info.Timestamp = now
		common.SetSerialized(ctx, stakeKey(staker), info)
	}

	pushTokens(ctx, staker, total)

	runtime.Notify("RewardsClaimed", staker, total)
}

// CalculatePendingRewards returns the reward accrued by the account since
// its last settlement, at the current reward rate. It does not include
// the already settled reward, see GetPendingRewards.
func CalculatePendingRewards(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return accrued(getStakeInfo(ctx, account), common.GetInt(ctx, rewardRateKey), currentTimeMs())
}

// GetPendingRewards returns the whole claimable reward of the account:
// the settled part plus the accrual since the last settlement.
func GetPendingRewards(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	info := getStakeInfo(ctx, account)
	rate := common.GetInt(ctx, rewardRateKey)
	return common.GetInt(ctx, rewardKey(account)) + accrued(info, rate, currentTimeMs())
}

// GetStakeInfo returns the stake ledger record of the account. Accounts
// that never staked or fully unstaked get a zero record.
func GetStakeInfo(account interop.Hash160) StakeInfo {
	ctx := storage.GetReadOnlyContext()
	return getStakeInfo(ctx, account)
}

// Rewards returns the settled but not yet paid reward of the account.
func Rewards(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, rewardKey(account))
}

// TotalStaked returns the sum of all staked amounts.
func TotalStaked() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalStakedKey)
}

// RewardRate returns the pool-wide reward rate in basis points per day.
func RewardRate() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, rewardRateKey)
}

// StakingToken returns the script hash of the staked NEP-17 token.
func StakingToken() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, tokenKey).(interop.Hash160)
}

// SetRewardRate replaces the pool-wide reward rate. Can be invoked only
// by the contract owner. The new rate applies from the next settlement of
// each account over its whole unsettled interval; already settled rewards
// are unaffected.
//
// Produces RewardRateChanged notification.
func SetRewardRate(rate int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if rate < 0 {
		panic("reward rate must not be negative")
	}

	storage.Put(ctx, rewardRateKey, rate)
	runtime.Notify("RewardRateChanged", rate)
}

// Pause freezes staking, unstaking and reward claiming. Can be invoked
// only by the contract owner. Unstaking is frozen too: the pause is a
// global freeze, not an exit window.
func Pause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)
	common.SetPaused(ctx, true)
	runtime.Log("staking contract paused")
}

// Unpause resumes staking operations. Can be invoked only by the
// contract owner.
func Unpause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)
	common.SetPaused(ctx, false)
	runtime.Log("staking contract unpaused")
}

// IsPaused returns true if staking operations are paused.
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

// settle folds the accrual of the current basis into the settled reward
// and returns the record ready for a basis change. Must be called before
// any mutation of the stake amount.
func settle(ctx storage.Context, staker interop.Hash160, now int) StakeInfo {
	info := getStakeInfo(ctx, staker)
	rate := common.GetInt(ctx, rewardRateKey)

	pending := accrued(info, rate, now)
	if pending > 0 {
		rKey := rewardKey(staker)
		storage.Put(ctx, rKey, common.GetInt(ctx, rKey)+pending)
	}

	return info
}

// accrued implements the only accrual formula of the pool: linear,
// truncating, current rate over the whole elapsed interval.
func accrued(info StakeInfo, rate int, now int) int {
	if info.Amount == 0 {
		return 0
	}

	elapsed := now - info.Timestamp
	if elapsed <= 0 {
		return 0
	}

	return info.Amount * rate * elapsed / (RateDenominator * msPerDay)
}

// currentTimeMs reads the block clock once; every computation of an
// operation must use this single snapshot.
func currentTimeMs() int {
	return runtime.GetTime()
}

func pullTokens(ctx storage.Context, from interop.Hash160, amount int) {
	tokenHash := storage.Get(ctx, tokenKey).(interop.Hash160)
	ok := contract.Call(tokenHash, "transfer", contract.All,
		from, runtime.GetExecutingScriptHash(), amount, nil).(bool)
	if !ok {
		panic(errTransferFailed)
	}
}

func pushTokens(ctx storage.Context, to interop.Hash160, amount int) {
	tokenHash := storage.Get(ctx, tokenKey).(interop.Hash160)
	ok := contract.Call(tokenHash, "transfer", contract.All,
		runtime.GetExecutingScriptHash(), to, amount, nil).(bool)
	if !ok {
		panic(errTransferFailed)
	}
}

func getStakeInfo(ctx storage.Context, account interop.Hash160) StakeInfo {
	data := storage.Get(ctx, stakeKey(account))
	if data != nil {
		return std.Deserialize(data.([]byte)).(StakeInfo)
	}

	return StakeInfo{}
}

func stakeKey(account interop.Hash160) []byte {
	return append([]byte{stakePrefix}, account...)
}

func rewardKey(account interop.Hash160) []byte {
	return append([]byte{rewardPrefix}, account...)
}
