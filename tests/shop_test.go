package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/zdt-labs/tokenshop-contract/common"
)

const shopPath = "../shop"

func deployShopContract(t *testing.T, e *neotest.Executor, tokenHash util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, shopPath, path.Join(shopPath, "config.yml"))
	e.DeployContract(t, c, []any{e.CommitteeHash, tokenHash})
	return c.Hash
}

func newShopInvoker(t *testing.T) (*neotest.ContractInvoker, *neotest.ContractInvoker) {
	e := newExecutor(t)
	tokenHash := deployTokenContract(t, e)
	shopHash := deployShopContract(t, e, tokenHash)
	return e.CommitteeInvoker(shopHash), e.CommitteeInvoker(tokenHash)
}

func productItem(id int64, name, description string, price, stock int64, active bool) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(id),
		stackitem.Make(name),
		stackitem.Make(description),
		stackitem.Make(price),
		stackitem.Make(stock),
		stackitem.Make(active),
	})
}

func checkProduct(t *testing.T, c *neotest.ContractInvoker, id int64, expected stackitem.Item) {
	res, err := c.TestInvoke(t, "getProduct", id)
	require.NoError(t, err)
	require.Equal(t, expected, res.Pop().Item())
}

func TestShopDeploy(t *testing.T) {
	c, token := newShopInvoker(t)

	c.Invoke(t, token.Hash.BytesBE(), "paymentToken")
	c.Invoke(t, 0, "productCount")
	c.Invoke(t, 0, "totalRevenue")
	c.Invoke(t, false, "isPaused")
	c.InvokeFail(t, "product not found", "getProduct", int64(1))
}

func TestShopAddProduct(t *testing.T) {
	c, _ := newShopInvoker(t)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrNotOwner, "addProduct", "Sticker", "A sticker", int64(10), int64(5))

	c.InvokeFail(t, "product price must be positive", "addProduct", "Sticker", "A sticker", int64(0), int64(5))
	c.InvokeFail(t, "stock must not be negative", "addProduct", "Sticker", "A sticker", int64(10), int64(-1))

	h := c.Invoke(t, 1, "addProduct", "Sticker", "A sticker", int64(10), int64(5))
	checkEvent(t, c.CheckHalt(t, h), "ProductAdded",
		stackitem.Make(1), stackitem.Make("Sticker"), stackitem.Make(10), stackitem.Make(5))
	checkProduct(t, c, 1, productItem(1, "Sticker", "A sticker", 10, 5, true))

	// Ids are sequential.
	c.Invoke(t, 2, "addProduct", "Mug", "A mug", int64(50), int64(3))
	c.Invoke(t, 2, "productCount")

	res, err := c.TestInvoke(t, "listProducts")
	require.NoError(t, err)
	items := iteratorToArray(res.Pop().Value().(*storage.Iterator))
	require.Equal(t, []stackitem.Item{
		productItem(1, "Sticker", "A sticker", 10, 5, true),
		productItem(2, "Mug", "A mug", 50, 3, true),
	}, items)
}

func TestShopUpdateProduct(t *testing.T) {
	c, _ := newShopInvoker(t)

	c.Invoke(t, 1, "addProduct", "Sticker", "A sticker", int64(10), int64(5))

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrNotOwner, "updateProduct",
		int64(1), "Sticker", "A sticker", int64(10), int64(5), true)
	c.InvokeFail(t, "product not found", "updateProduct",
		int64(2), "Mug", "A mug", int64(50), int64(3), true)

	h := c.Invoke(t, stackitem.Null{}, "updateProduct",
		int64(1), "Big Sticker", "A bigger sticker", int64(20), int64(7), false)
	checkEvent(t, c.CheckHalt(t, h), "ProductUpdated",
		stackitem.Make(1), stackitem.Make("Big Sticker"),
		stackitem.Make(20), stackitem.Make(7), stackitem.Make(false))
	checkProduct(t, c, 1, productItem(1, "Big Sticker", "A bigger sticker", 20, 7, false))
}

func TestShopPurchase(t *testing.T) {
	c, token := newShopInvoker(t)

	c.Invoke(t, 1, "addProduct", "Sticker", "A sticker", int64(10), int64(5))

	buyer := fundedAccount(t, token, 100)
	buyerHash := buyer.ScriptHash()
	cBuyer := c.WithSigners(buyer)

	cBuyer.InvokeFail(t, "product not found", "purchaseProduct", buyerHash, int64(2), int64(1))
	cBuyer.InvokeFail(t, "quantity must be positive", "purchaseProduct", buyerHash, int64(1), int64(0))
	cBuyer.InvokeFail(t, "insufficient stock", "purchaseProduct", buyerHash, int64(1), int64(6))

	h := cBuyer.Invoke(t, stackitem.Null{}, "purchaseProduct", buyerHash, int64(1), int64(3))
	checkEvent(t, cBuyer.CheckHalt(t, h), "ProductPurchased",
		stackitem.NewByteArray(buyerHash.BytesBE()),
		stackitem.Make(1), stackitem.Make(3), stackitem.Make(30))

	checkProduct(t, c, 1, productItem(1, "Sticker", "A sticker", 10, 2, true))
	c.Invoke(t, 3, "purchases", buyerHash, int64(1))
	c.Invoke(t, 30, "totalRevenue")
	require.EqualValues(t, 70, tokenBalance(t, token, buyerHash))
	require.EqualValues(t, 30, tokenBalance(t, token, c.Hash))

	// Repeated purchases accumulate the counter.
	cBuyer.Invoke(t, stackitem.Null{}, "purchaseProduct", buyerHash, int64(1), int64(1))
	c.Invoke(t, 4, "purchases", buyerHash, int64(1))
	c.Invoke(t, 40, "totalRevenue")

	// A buyer that can not cover the cost is rejected before the stock
	// is touched.
	pauper := c.NewAccount(t)
	c.WithSigners(pauper).InvokeFail(t, "insufficient token balance",
		"purchaseProduct", pauper.ScriptHash(), int64(1), int64(1))
	checkProduct(t, c, 1, productItem(1, "Sticker", "A sticker", 10, 1, true))

	c.Invoke(t, stackitem.Null{}, "updateProduct",
		int64(1), "Sticker", "A sticker", int64(10), int64(1), false)
	cBuyer.InvokeFail(t, "product not active", "purchaseProduct", buyerHash, int64(1), int64(1))
}

func TestShopWithdrawRevenue(t *testing.T) {
	c, token := newShopInvoker(t)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrNotOwner, "withdrawRevenue")
	c.InvokeFail(t, "nothing to withdraw", "withdrawRevenue")

	c.Invoke(t, 1, "addProduct", "Sticker", "A sticker", int64(10), int64(5))
	buyer := fundedAccount(t, token, 100)
	c.WithSigners(buyer).Invoke(t, stackitem.Null{}, "purchaseProduct", buyer.ScriptHash(), int64(1), int64(2))

	ownerBefore := tokenBalance(t, token, c.CommitteeHash)
	h := c.Invoke(t, stackitem.Null{}, "withdrawRevenue")
	checkEvent(t, c.CheckHalt(t, h), "RevenueWithdrawn",
		stackitem.NewByteArray(c.CommitteeHash.BytesBE()), stackitem.Make(20))

	require.EqualValues(t, 0, tokenBalance(t, token, c.Hash))
	require.Equal(t, ownerBefore+20, tokenBalance(t, token, c.CommitteeHash))
	// The lifetime counter survives the withdrawal.
	c.Invoke(t, 20, "totalRevenue")

	c.InvokeFail(t, "nothing to withdraw", "withdrawRevenue")
}

func TestShopPause(t *testing.T) {
	c, token := newShopInvoker(t)

	c.Invoke(t, 1, "addProduct", "Sticker", "A sticker", int64(10), int64(5))
	buyer := fundedAccount(t, token, 100)
	buyerHash := buyer.ScriptHash()
	cBuyer := c.WithSigners(buyer)

	cBuyer.Invoke(t, stackitem.Null{}, "purchaseProduct", buyerHash, int64(1), int64(1))

	cBuyer.InvokeFail(t, common.ErrNotOwner, "pause")
	c.Invoke(t, stackitem.Null{}, "pause")
	c.Invoke(t, true, "isPaused")

	cBuyer.InvokeFail(t, common.ErrPaused, "purchaseProduct", buyerHash, int64(1), int64(1))

	// Catalog management and revenue withdrawal are owner operations and
	// are not gated by the pause.
	c.Invoke(t, 2, "addProduct", "Mug", "A mug", int64(50), int64(3))
	c.Invoke(t, stackitem.Null{}, "withdrawRevenue")

	c.Invoke(t, stackitem.Null{}, "unpause")
	cBuyer.Invoke(t, stackitem.Null{}, "purchaseProduct", buyerHash, int64(1), int64(1))
}
