// Package staking contains RPC wrappers for ZeroDev Staking Pool contract.
package staking

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// StakingStakeInfo is a contract-specific staking.StakeInfo type used by its methods.
type StakingStakeInfo struct {
	Amount *big.Int
	Timestamp *big.Int
}

// StakedEvent represents "Staked" event emitted by the contract.
type StakedEvent struct {
	Staker util.Uint160
	Amount *big.Int
}

// UnstakedEvent represents "Unstaked" event emitted by the contract.
type UnstakedEvent struct {
	Staker util.Uint160
	Amount *big.Int
	Reward *big.Int
}

// RewardsClaimedEvent represents "RewardsClaimed" event emitted by the contract.
type RewardsClaimedEvent struct {
	Staker util.Uint160
	Amount *big.Int
}

// RewardRateChangedEvent represents "RewardRateChanged" event emitted by the contract.
type RewardRateChangedEvent struct {
	Rate *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// CalculatePendingRewards invokes `calculatePendingRewards` method of contract.
func (c *ContractReader) CalculatePendingRewards(staker util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "calculatePendingRewards", staker))
}

// GetPendingRewards invokes `getPendingRewards` method of contract.
func (c *ContractReader) GetPendingRewards(staker util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getPendingRewards", staker))
}

// GetStakeInfo invokes `getStakeInfo` method of contract.
func (c *ContractReader) GetStakeInfo(staker util.Uint160) (*StakingStakeInfo, error) {
	return itemToStakingStakeInfo(unwrap.Item(c.invoker.Call(c.hash, "getStakeInfo", staker)))
}

// IsPaused invokes `isPaused` method of contract.
func (c *ContractReader) IsPaused() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isPaused"))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// RewardRate invokes `rewardRate` method of contract.
func (c *ContractReader) RewardRate() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "rewardRate"))
}

// Rewards invokes `rewards` method of contract.
func (c *ContractReader) Rewards(staker util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "rewards", staker))
}

// StakingToken invokes `stakingToken` method of contract.
func (c *ContractReader) StakingToken() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "stakingToken"))
}

// TotalStaked invokes `totalStaked` method of contract.
func (c *ContractReader) TotalStaked() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalStaked"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// ClaimRewards creates a transaction invoking `claimRewards` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ClaimRewards(staker util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claimRewards", staker)
}

// ClaimRewardsTransaction creates a transaction invoking `claimRewards` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClaimRewardsTransaction(staker util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claimRewards", staker)
}

// ClaimRewardsUnsigned creates a transaction invoking `claimRewards` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClaimRewardsUnsigned(staker util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "claimRewards", nil, staker)
}

// Pause creates a transaction invoking `pause` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Pause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "pause")
}

// PauseTransaction creates a transaction invoking `pause` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PauseTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "pause")
}

// PauseUnsigned creates a transaction invoking `pause` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PauseUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "pause", nil)
}

// SetRewardRate creates a transaction invoking `setRewardRate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetRewardRate(rate *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setRewardRate", rate)
}

// SetRewardRateTransaction creates a transaction invoking `setRewardRate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetRewardRateTransaction(rate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setRewardRate", rate)
}

// SetRewardRateUnsigned creates a transaction invoking `setRewardRate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetRewardRateUnsigned(rate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setRewardRate", nil, rate)
}

// Stake creates a transaction invoking `stake` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Stake(staker util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "stake", staker, amount)
}

// StakeTransaction creates a transaction invoking `stake` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) StakeTransaction(staker util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "stake", staker, amount)
}

// StakeUnsigned creates a transaction invoking `stake` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) StakeUnsigned(staker util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "stake", nil, staker, amount)
}

// Unpause creates a transaction invoking `unpause` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Unpause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unpause")
}

// UnpauseTransaction creates a transaction invoking `unpause` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnpauseTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unpause")
}

// UnpauseUnsigned creates a transaction invoking `unpause` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnpauseUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unpause", nil)
}

// Unstake creates a transaction invoking `unstake` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Unstake(staker util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unstake", staker, amount)
}

// UnstakeTransaction creates a transaction invoking `unstake` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnstakeTransaction(staker util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unstake", staker, amount)
}

// UnstakeUnsigned creates a transaction invoking `unstake` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnstakeUnsigned(staker util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unstake", nil, staker, amount)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToStakingStakeInfo converts stack item into *StakingStakeInfo.
func itemToStakingStakeInfo(item stackitem.Item, err error) (*StakingStakeInfo, error) {
	if err != nil {
		return nil, err
	}
	var res = new(StakingStakeInfo)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of StakingStakeInfo from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *StakingStakeInfo) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	res.Timestamp, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	return nil
}

// StakedEventsFromApplicationLog retrieves a set of all emitted events
// with "Staked" name from the provided [result.ApplicationLog].
func StakedEventsFromApplicationLog(log *result.ApplicationLog) ([]*StakedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*StakedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Staked" {
				continue
			}
			event := new(StakedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize StakedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to StakedEvent or
// returns an error if it's not possible to do to so.
func (e *StakedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Staker, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Staker: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// UnstakedEventsFromApplicationLog retrieves a set of all emitted events
// with "Unstaked" name from the provided [result.ApplicationLog].
func UnstakedEventsFromApplicationLog(log *result.ApplicationLog) ([]*UnstakedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UnstakedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Unstaked" {
				continue
			}
			event := new(UnstakedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UnstakedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UnstakedEvent or
// returns an error if it's not possible to do to so.
func (e *UnstakedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Staker, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Staker: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Reward, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Reward: %w", err)
	}

	return nil
}

// RewardsClaimedEventsFromApplicationLog retrieves a set of all emitted events
// with "RewardsClaimed" name from the provided [result.ApplicationLog].
func RewardsClaimedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RewardsClaimedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RewardsClaimedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RewardsClaimed" {
				continue
			}
			event := new(RewardsClaimedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RewardsClaimedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RewardsClaimedEvent or
// returns an error if it's not possible to do to so.
func (e *RewardsClaimedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Staker, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Staker: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// RewardRateChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "RewardRateChanged" name from the provided [result.ApplicationLog].
func RewardRateChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RewardRateChangedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RewardRateChangedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RewardRateChanged" {
				continue
			}
			event := new(RewardRateChangedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RewardRateChangedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RewardRateChangedEvent or
// returns an error if it's not possible to do to so.
func (e *RewardRateChangedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Rate, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Rate: %w", err)
	}

	return nil
}
