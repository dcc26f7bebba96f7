/*
Shop contract is the fixed-catalog ZDT shop of the token shop suite.

The owner maintains a catalog of products with a price, a stock counter
and an active flag. Products get sequential ids starting at 1 and are
never deleted; deactivation removes them from sale. Anybody can purchase
active products while the shop is not paused, paying in ZDT; the cost is
collected into the shop's own balance, which the owner withdraws with
withdrawRevenue. totalRevenue is a lifetime counter and survives
withdrawals. Pausing the shop blocks purchases only, catalog management
and withdrawal stay available.

Contract notifications

ProductAdded notification. Produced when the owner adds a catalog entry.

  ProductAdded:
    - name: id
      type: Integer
    - name: name
      type: String
    - name: price
      type: Integer
    - name: stock
      type: Integer

ProductUpdated notification. Produced when the owner overwrites a
catalog entry.

  ProductUpdated:
    - name: id
      type: Integer
    - name: name
      type: String
    - name: price
      type: Integer
    - name: stock
      type: Integer
    - name: active
      type: Boolean

ProductPurchased notification. Produced on every successful sale.

  ProductPurchased:
    - name: buyer
      type: Hash160
    - name: id
      type: Integer
    - name: quantity
      type: Integer
    - name: totalCost
      type: Integer

RevenueWithdrawn notification. Produced when the owner drains the shop
balance.

  RevenueWithdrawn:
    - name: owner
      type: Hash160
    - name: amount
      type: Integer
*/
package shop
