/*
Staking contract is the ZDT staking pool of the token shop suite.

Every account owns a single stake record: the staked amount and the block
time of the last accrual settlement. Rewards accrue linearly at the
pool-wide rate, expressed in basis points of the staked amount per day
(rate 100 is 1% per day), and are settled into a per-account reward
balance before every change of the record. The pool pays principal and
rewards from its own ZDT balance, so it has to be funded by the owner.

The reward rate change applies to each account from its next settlement
over the whole unsettled interval. The owner can pause the pool, which
freezes staking, unstaking and claiming alike.

Contract notifications

Staked notification. Produced when an account locks tokens in the pool.

  Staked:
    - name: staker
      type: Hash160
    - name: amount
      type: Integer

Unstaked notification. Produced when an account withdraws principal; the
whole settled reward is paid out in the same operation.

  Unstaked:
    - name: staker
      type: Hash160
    - name: amount
      type: Integer
    - name: reward
      type: Integer

RewardsClaimed notification. Produced when an account claims its reward
without touching the principal.

  RewardsClaimed:
    - name: staker
      type: Hash160
    - name: amount
      type: Integer

RewardRateChanged notification. Produced when the owner replaces the
pool-wide reward rate.

  RewardRateChanged:
    - name: rate
      type: Integer
*/
package staking
