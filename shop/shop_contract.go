package shop

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/zdt-labs/tokenshop-contract/common"
)

// Product is a single catalog entry. Products are never deleted,
// deactivation is the removal mechanism.
type Product struct {
	ID          int
	Name        string
	Description string
	// Price in ZDT base units, always positive.
	Price  int
	Stock  int
	Active bool
}

const (
	tokenKey        = "paymentToken"
	productCountKey = "productCount"
	totalRevenueKey = "totalRevenue"

	productPrefix  = 'p'
	purchasePrefix = 'c'
)

var (
	errInvalidPrice    = "product price must be positive"
	errInvalidQuantity = "quantity must be positive"
	errNotFound        = "product not found"
	errNotActive       = "product not active"
	errNoStock         = "insufficient stock"
	errNoBalance       = "insufficient token balance"
	errNothingToDraw   = "nothing to withdraw"
	errTransferFailed  = "token transfer failed"
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner interop.Hash160
		token interop.Hash160
	})

	if len(args.token) != interop.Hash160Len {
		panic("incorrect length of token script hash")
	}

	common.SetOwner(ctx, args.owner)
	storage.Put(ctx, tokenKey, args.token)

	runtime.Log("shop contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("shop contract updated")
}

// AddProduct creates a new catalog entry with the next sequential id
// (ids start at 1) and returns the id. New products are active. Can be
// invoked only by the contract owner.
//
// Produces ProductAdded notification.
func AddProduct(name, description string, price, stock int) int {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if price <= 0 {
		panic(errInvalidPrice)
	}
	if stock < 0 {
		panic("stock must not be negative")
	}

	id := common.GetInt(ctx, productCountKey) + 1
	storage.Put(ctx, productCountKey, id)

	p := Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Active:      true,
	}
	common.SetSerialized(ctx, productKey(id), p)

	runtime.Notify("ProductAdded", id, name, price, stock)
	return id
}

// UpdateProduct overwrites every mutable field of an existing product.
// Can be invoked only by the contract owner.
//
// Produces ProductUpdated notification.
func UpdateProduct(id int, name, description string, price, stock int, active bool) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	p := getProduct(ctx, id)
	p.Name = name
	p.Description = description
	p.Price = price
	p.Stock = stock
	p.Active = active
	common.SetSerialized(ctx, productKey(id), p)

	runtime.Notify("ProductUpdated", id, name, price, stock, active)
}

// PurchaseProduct sells quantity units of a product to the buyer. The
// total cost is pulled from the buyer within the same transaction, so
// the buyer's witness is required. The buyer's token balance is checked
// before the stock is touched to fail with a shop error rather than a
// generic transfer failure.
//
// Produces ProductPurchased notification.
func PurchaseProduct(buyer interop.Hash160, id, quantity int) {
	ctx := storage.GetContext()
	common.RequireNotPaused(ctx)
	common.CheckWitness(buyer)

	p := getProduct(ctx, id)
	if quantity <= 0 {
		panic(errInvalidQuantity)
	}
	if !p.Active {
		panic(errNotActive)
	}
	if quantity > p.Stock {
		panic(errNoStock)
	}

	tokenHash := storage.Get(ctx, tokenKey).(interop.Hash160)
	totalCost := p.Price * quantity

	balance := contract.Call(tokenHash, "balanceOf", contract.ReadStates, buyer).(int)
	if balance < totalCost {
		panic(errNoBalance)
	}

	p.Stock -= quantity
	common.SetSerialized(ctx, productKey(id), p)

	ok := contract.Call(tokenHash, "transfer", contract.All,
		buyer, runtime.GetExecutingScriptHash(), totalCost, nil).(bool)
	if !ok {
		panic(errTransferFailed)
	}

	pKey := purchaseKey(buyer, id)
	storage.Put(ctx, pKey, common.GetInt(ctx, pKey)+quantity)
	storage.Put(ctx, totalRevenueKey, common.GetInt(ctx, totalRevenueKey)+totalCost)

	runtime.Notify("ProductPurchased", buyer, id, quantity, totalCost)
}

// WithdrawRevenue transfers the whole current token balance of the shop
// to the owner. TotalRevenue is a lifetime counter and is not reset. Can
// be invoked only by the contract owner.
//
// Produces RevenueWithdrawn notification.
func WithdrawRevenue() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	tokenHash := storage.Get(ctx, tokenKey).(interop.Hash160)
	self := runtime.GetExecutingScriptHash()

	balance := contract.Call(tokenHash, "balanceOf", contract.ReadStates, self).(int)
	if balance == 0 {
		panic(errNothingToDraw)
	}

	owner := common.Owner(ctx)
	ok := contract.Call(tokenHash, "transfer", contract.All,
		self, owner, balance, nil).(bool)
	if !ok {
		panic(errTransferFailed)
	}

	runtime.Notify("RevenueWithdrawn", owner, balance)
}

// GetProduct returns the catalog entry with the given id.
func GetProduct(id int) Product {
	ctx := storage.GetReadOnlyContext()
	return getProduct(ctx, id)
}

// ListProducts returns an iterator over all catalog entries.
func ListProducts() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{productPrefix}, storage.ValuesOnly|storage.DeserializeValues)
}

// Purchases returns the cumulative quantity of a product ever purchased
// by the buyer.
func Purchases(buyer interop.Hash160, id int) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, purchaseKey(buyer, id))
}

// TotalRevenue returns the lifetime sum of all purchase costs. It is not
// reduced by revenue withdrawals.
func TotalRevenue() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalRevenueKey)
}

// ProductCount returns the number of catalog entries ever added.
func ProductCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, productCountKey)
}

// PaymentToken returns the script hash of the NEP-17 token the shop
// settles purchases in.
func PaymentToken() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, tokenKey).(interop.Hash160)
}

// Pause freezes purchases. Product management and revenue withdrawal
// stay available. Can be invoked only by the contract owner.
func Pause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)
	common.SetPaused(ctx, true)
	runtime.Log("shop contract paused")
}

// Unpause resumes purchases. Can be invoked only by the contract owner.
func Unpause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)
	common.SetPaused(ctx, false)
	runtime.Log("shop contract unpaused")
}

// IsPaused returns true if purchases are paused.
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

func getProduct(ctx storage.Context, id int) Product {
	data := storage.Get(ctx, productKey(id))
	if data == nil {
		panic(errNotFound)
	}
	return std.Deserialize(data.([]byte)).(Product)
}

func productKey(id int) []byte {
	return append([]byte{productPrefix}, []byte(std.Itoa(id, 10))...)
}

func purchaseKey(buyer interop.Hash160, id int) []byte {
	key := append([]byte{purchasePrefix}, buyer...)
	return append(key, []byte(std.Itoa(id, 10))...)
}
