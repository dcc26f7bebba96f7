package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"

	"github.com/zdt-labs/tokenshop-contract/deploy"
	"github.com/zdt-labs/tokenshop-contract/rpc/token"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the deployer NEP-6 wallet")
	password := flag.String("password", "", "Password of the deployer wallet account")
	network := flag.String("network", "", "Label of the target network (e.g. 'testnet')")
	contractsDir := flag.String("contracts", "build", "Directory with compiled .nef and .manifest.json files")
	deploymentsDir := flag.String("deployments", "deployments", "Directory the address registry is written to")
	rewardRate := flag.Int64("rate", 100, "Initial staking reward rate, basis points per day")
	dripAmount := flag.Int64("drip", 100_0000_0000, "Faucet drip amount in ZDT base units")
	cooldown := flag.Int64("cooldown", 86_400_000, "Faucet cooldown period in milliseconds")
	poolFunding := flag.Int64("pool", 500_000*1_0000_0000, "ZDT transferred to the staking pool for rewards")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing deployer wallet")
	case *network == "":
		log.Fatal("missing network label")
	}

	b, err := newRemoteBlockchain(*neoRPCEndpoint, *walletPath, *password)
	if err != nil {
		log.Fatal(fmt.Errorf("init remote blockchain: %w", err))
	}
	defer b.close()

	r := deploy.New(*network)

	tokenHash, err := b.deployContract(*contractsDir, deploy.ContractToken, []any{b.owner})
	if err != nil {
		log.Fatal(err)
	}
	r.Set(deploy.ContractToken, tokenHash)
	log.Printf("token contract: %s\n", tokenHash.StringLE())

	stakingHash, err := b.deployContract(*contractsDir, deploy.ContractStaking, []any{b.owner, tokenHash, *rewardRate})
	if err != nil {
		log.Fatal(err)
	}
	r.Set(deploy.ContractStaking, stakingHash)
	log.Printf("staking contract: %s\n", stakingHash.StringLE())

	shopHash, err := b.deployContract(*contractsDir, deploy.ContractShop, []any{b.owner, tokenHash})
	if err != nil {
		log.Fatal(err)
	}
	r.Set(deploy.ContractShop, shopHash)
	log.Printf("shop contract: %s\n", shopHash.StringLE())

	faucetHash, err := b.deployContract(*contractsDir, deploy.ContractFaucet, []any{b.owner, tokenHash, *dripAmount, *cooldown})
	if err != nil {
		log.Fatal(err)
	}
	r.Set(deploy.ContractFaucet, faucetHash)
	log.Printf("faucet contract: %s\n", faucetHash.StringLE())

	nftHash, err := b.deployContract(*contractsDir, deploy.ContractNFTRewards, []any{b.owner})
	if err != nil {
		log.Fatal(err)
	}
	r.Set(deploy.ContractNFTRewards, nftHash)
	log.Printf("nft rewards contract: %s\n", nftHash.StringLE())

	zdt := token.New(b.actor, tokenHash)

	_, err = b.actor.Wait(zdt.AddMinter(faucetHash))
	if err != nil {
		log.Fatal(fmt.Errorf("grant minter rights to the faucet: %w", err))
	}
	log.Println("faucet registered as a token minter")

	_, err = b.actor.Wait(zdt.Transfer(b.owner, stakingHash, big.NewInt(*poolFunding), nil))
	if err != nil {
		log.Fatal(fmt.Errorf("fund the staking pool: %w", err))
	}
	log.Printf("staking pool funded with %d ZDT base units\n", *poolFunding)

	err = r.Save(*deploymentsDir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("deployment registry written to '%s/%s.json'\n", *deploymentsDir, *network)
}
