/*
NFTRewards contract issues the achievement NFTs of the token shop suite.

It is a NEP-11 compatible non-divisible token. The contract owner mints
a token per achievement to a recipient; token ids are 32-byte hashes of
the recipient and a mint serial, so they are unique and opaque. Tokens
are freely transferable by their owners.

Contract notifications

Transfer notification. This is NEP-11 standard notification.

  Transfer:
    - name: from
      type: Hash160
    - name: to
      type: Hash160
    - name: amount
      type: Integer
    - name: tokenId
      type: ByteArray

RewardMinted notification. Produced on every mint.

  RewardMinted:
    - name: to
      type: Hash160
    - name: tokenId
      type: ByteArray
    - name: achievement
      type: String
*/
package nftrewards
