// Package shop contains RPC wrappers for ZeroDev Token Shop contract.
package shop

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// ShopProduct is a contract-specific shop.Product type used by its methods.
type ShopProduct struct {
	ID *big.Int
	Name string
	Description string
	Price *big.Int
	Stock *big.Int
	Active bool
}

// ProductAddedEvent represents "ProductAdded" event emitted by the contract.
type ProductAddedEvent struct {
	ID *big.Int
	Name string
	Price *big.Int
	Stock *big.Int
}

// ProductUpdatedEvent represents "ProductUpdated" event emitted by the contract.
type ProductUpdatedEvent struct {
	ID *big.Int
	Name string
	Price *big.Int
	Stock *big.Int
	Active bool
}

// ProductPurchasedEvent represents "ProductPurchased" event emitted by the contract.
type ProductPurchasedEvent struct {
	Buyer util.Uint160
	ID *big.Int
	Quantity *big.Int
	TotalCost *big.Int
}

// RevenueWithdrawnEvent represents "RevenueWithdrawn" event emitted by the contract.
type RevenueWithdrawnEvent struct {
	Owner util.Uint160
	Amount *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
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

// GetProduct invokes `getProduct` method of contract.
func (c *ContractReader) GetProduct(id *big.Int) (*ShopProduct, error) {
	return itemToShopProduct(unwrap.Item(c.invoker.Call(c.hash, "getProduct", id)))
}

// IsPaused invokes `isPaused` method of contract.
func (c *ContractReader) IsPaused() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isPaused"))
}

// ListProducts invokes `listProducts` method of contract.
func (c *ContractReader) ListProducts() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "listProducts"))
}

// ListProductsExpanded is similar to ListProducts (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ListProductsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "listProducts", _numOfIteratorItems))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// PaymentToken invokes `paymentToken` method of contract.
func (c *ContractReader) PaymentToken() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "paymentToken"))
}

// ProductCount invokes `productCount` method of contract.
func (c *ContractReader) ProductCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "productCount"))
}

// Purchases invokes `purchases` method of contract.
func (c *ContractReader) Purchases(buyer util.Uint160, id *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "purchases", buyer, id))
}

// TotalRevenue invokes `totalRevenue` method of contract.
func (c *ContractReader) TotalRevenue() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalRevenue"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AddProduct creates a transaction invoking `addProduct` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddProduct(name string, description string, price *big.Int, stock *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addProduct", name, description, price, stock)
}

// AddProductTransaction creates a transaction invoking `addProduct` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddProductTransaction(name string, description string, price *big.Int, stock *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addProduct", name, description, price, stock)
}

// AddProductUnsigned creates a transaction invoking `addProduct` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddProductUnsigned(name string, description string, price *big.Int, stock *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addProduct", nil, name, description, price, stock)
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

// PurchaseProduct creates a transaction invoking `purchaseProduct` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) PurchaseProduct(buyer util.Uint160, id *big.Int, quantity *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "purchaseProduct", buyer, id, quantity)
}

// PurchaseProductTransaction creates a transaction invoking `purchaseProduct` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PurchaseProductTransaction(buyer util.Uint160, id *big.Int, quantity *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "purchaseProduct", buyer, id, quantity)
}

// PurchaseProductUnsigned creates a transaction invoking `purchaseProduct` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PurchaseProductUnsigned(buyer util.Uint160, id *big.Int, quantity *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "purchaseProduct", nil, buyer, id, quantity)
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

// UpdateProduct creates a transaction invoking `updateProduct` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateProduct(id *big.Int, name string, description string, price *big.Int, stock *big.Int, active bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateProduct", id, name, description, price, stock, active)
}

// UpdateProductTransaction creates a transaction invoking `updateProduct` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateProductTransaction(id *big.Int, name string, description string, price *big.Int, stock *big.Int, active bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateProduct", id, name, description, price, stock, active)
}

// UpdateProductUnsigned creates a transaction invoking `updateProduct` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateProductUnsigned(id *big.Int, name string, description string, price *big.Int, stock *big.Int, active bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateProduct", nil, id, name, description, price, stock, active)
}

// WithdrawRevenue creates a transaction invoking `withdrawRevenue` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawRevenue() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawRevenue")
}

// WithdrawRevenueTransaction creates a transaction invoking `withdrawRevenue` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawRevenueTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawRevenue")
}

// WithdrawRevenueUnsigned creates a transaction invoking `withdrawRevenue` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawRevenueUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawRevenue", nil)
}

// itemToShopProduct converts stack item into *ShopProduct.
func itemToShopProduct(item stackitem.Item, err error) (*ShopProduct, error) {
	if err != nil {
		return nil, err
	}
	var res = new(ShopProduct)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of ShopProduct from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *ShopProduct) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.Name, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	index++
	res.Description, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Description: %w", err)
	}

	index++
	res.Price, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Price: %w", err)
	}

	index++
	res.Stock, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Stock: %w", err)
	}

	index++
	res.Active, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Active: %w", err)
	}

	return nil
}

// ProductAddedEventsFromApplicationLog retrieves a set of all emitted events
// with "ProductAdded" name from the provided [result.ApplicationLog].
func ProductAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ProductAddedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ProductAddedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ProductAdded" {
				continue
			}
			event := new(ProductAddedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ProductAddedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ProductAddedEvent or
// returns an error if it's not possible to do to so.
func (e *ProductAddedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Name, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	index++
	e.Price, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Price: %w", err)
	}

	index++
	e.Stock, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Stock: %w", err)
	}

	return nil
}

// ProductUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "ProductUpdated" name from the provided [result.ApplicationLog].
func ProductUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ProductUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ProductUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ProductUpdated" {
				continue
			}
			event := new(ProductUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ProductUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ProductUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *ProductUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Name, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	index++
	e.Price, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Price: %w", err)
	}

	index++
	e.Stock, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Stock: %w", err)
	}

	index++
	e.Active, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Active: %w", err)
	}

	return nil
}

// ProductPurchasedEventsFromApplicationLog retrieves a set of all emitted events
// with "ProductPurchased" name from the provided [result.ApplicationLog].
func ProductPurchasedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ProductPurchasedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ProductPurchasedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ProductPurchased" {
				continue
			}
			event := new(ProductPurchasedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ProductPurchasedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ProductPurchasedEvent or
// returns an error if it's not possible to do to so.
func (e *ProductPurchasedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Buyer, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Buyer: %w", err)
	}

	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Quantity, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Quantity: %w", err)
	}

	index++
	e.TotalCost, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalCost: %w", err)
	}

	return nil
}

// RevenueWithdrawnEventsFromApplicationLog retrieves a set of all emitted events
// with "RevenueWithdrawn" name from the provided [result.ApplicationLog].
func RevenueWithdrawnEventsFromApplicationLog(log *result.ApplicationLog) ([]*RevenueWithdrawnEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RevenueWithdrawnEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RevenueWithdrawn" {
				continue
			}
			event := new(RevenueWithdrawnEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RevenueWithdrawnEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RevenueWithdrawnEvent or
// returns an error if it's not possible to do to so.
func (e *RevenueWithdrawnEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}
