package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/zdt-labs/tokenshop-contract/deploy"
	"github.com/zdt-labs/tokenshop-contract/rpc/shop"
)

// initialProducts is the catalog the shop starts with.
var initialProducts = []struct {
	name        string
	description string
	price       int64
	stock       int64
}{
	{"ZDT Power User Badge", "A shiny badge for power users.", 50_0000_0000, 1000},
	{"Gas Rebate Voucher", "Get a rebate on your next transaction.", 25_0000_0000, 500},
	{"Exclusive Skin Shard", "Collect 3 to unlock an exclusive skin.", 100_0000_0000, 200},
}

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the contract owner NEP-6 wallet")
	password := flag.String("password", "", "Password of the owner wallet account")
	network := flag.String("network", "", "Label of the target network (e.g. 'testnet')")
	deploymentsDir := flag.String("deployments", "deployments", "Directory the address registry is read from")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing owner wallet")
	case *network == "":
		log.Fatal("missing network label")
	}

	r, err := deploy.Load(*deploymentsDir, *network)
	if err != nil {
		log.Fatal(fmt.Errorf("load deployment registry: %w", err))
	}

	shopHash, err := r.Get(deploy.ContractShop)
	if err != nil {
		log.Fatal(err)
	}

	act, closeClient, err := newActor(*neoRPCEndpoint, *walletPath, *password)
	if err != nil {
		log.Fatal(fmt.Errorf("init actor: %w", err))
	}
	defer closeClient()

	tokenShop := shop.New(act, shopHash)

	count, err := tokenShop.ProductCount()
	if err != nil {
		log.Fatal(fmt.Errorf("get product count: %w", err))
	}
	if count.Sign() != 0 {
		log.Fatalf("shop catalog already has %s products, refusing to seed again", count)
	}

	for _, p := range initialProducts {
		_, err = act.Wait(tokenShop.AddProduct(p.name, p.description, big.NewInt(p.price), big.NewInt(p.stock)))
		if err != nil {
			log.Fatal(fmt.Errorf("add product %q: %w", p.name, err))
		}
		log.Printf("added product: %s\n", p.name)
	}

	count, err = tokenShop.ProductCount()
	if err != nil {
		log.Fatal(fmt.Errorf("get product count: %w", err))
	}
	log.Printf("shop catalog seeded, %s products total\n", count)
}

// newActor opens the owner wallet and dials the Neo RPC server.
// Connection and all requests are done within 15s timeout.
func newActor(endpoint, walletPath, password string) (*actor.Actor, func(), error) {
	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open wallet: %w", err)
	}

	acc := w.Accounts[0]
	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, nil, fmt.Errorf("decrypt wallet account: %w", err)
	}

	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("RPC client dial: %w", err)
	}

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		c.Close()
		return nil, nil, err
	}

	return act, c.Close, nil
}
