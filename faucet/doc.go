/*
Faucet contract is the time-locked ZDT faucet of the token shop suite.

Any account can request the configured drip amount once per cooldown
period. The faucet mints fresh ZDT instead of paying from a balance, so
it has to be registered as a minter on the token contract; minting stays
subject to the token's supply cap and pause flag.

Contract notifications

TokensDripped notification. Produced on every successful request.

  TokensDripped:
    - name: account
      type: Hash160
    - name: amount
      type: Integer
*/
package faucet
