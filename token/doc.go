/*
Token contract is the ZDT fungible token of the token shop suite.

It is a NEP-17 compatible contract, so balances can be tracked and
controlled by N3 compatible network monitors and wallet software. The
whole initial supply is minted to the contract owner on deploy; more ZDT
can be minted by the owner or by registered minter contracts (the faucet)
up to the hard MaxSupply cap. The owner can pause the contract, which
stops transfers and minting.

Contract notifications

Transfer notification. This is NEP-17 standard notification.

  Transfer:
    - name: from
      type: Hash160
    - name: to
      type: Hash160
    - name: amount
      type: Integer

Mint notification. This notification is produced when new ZDT enter
circulation.

  Mint:
    - name: to
      type: Hash160
    - name: amount
      type: Integer

MinterAdded notification. This notification is produced when the owner
authorizes a new minter.

  MinterAdded:
    - name: minter
      type: Hash160

MinterRemoved notification. This notification is produced when the owner
revokes minting rights.

  MinterRemoved:
    - name: minter
      type: Hash160
*/
package token
