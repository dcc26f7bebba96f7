// Package deploy provides the deployment address registry of the token
// shop contract suite. The registry is a per-network JSON file shared
// between the deployment tools and off-chain consumers.
package deploy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Names of the suite contracts as recorded in the registry.
const (
	ContractToken      = "token"
	ContractStaking    = "staking"
	ContractShop       = "shop"
	ContractFaucet     = "faucet"
	ContractNFTRewards = "nftrewards"
)

// Registry maps contract names to their on-chain addresses for a single
// network. It is persisted as <dir>/<network>.json.
type Registry struct {
	Network   string                  `json:"network"`
	Contracts map[string]util.Uint160 `json:"contracts"`
}

// New creates an empty registry for the given network.
func New(network string) *Registry {
	return &Registry{
		Network:   network,
		Contracts: make(map[string]util.Uint160),
	}
}

// Load reads the registry of the given network from dir.
func Load(dir, network string) (*Registry, error) {
	data, err := os.ReadFile(registryPath(dir, network))
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}

	var r Registry
	err = json.Unmarshal(data, &r)
	if err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if r.Contracts == nil {
		r.Contracts = make(map[string]util.Uint160)
	}

	return &r, nil
}

// Save writes the registry to dir, creating the directory if needed.
func (r *Registry) Save(dir string) error {
	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	err = os.WriteFile(registryPath(dir, r.Network), data, 0600)
	if err != nil {
		return fmt.Errorf("write registry file: %w", err)
	}

	return nil
}

// Get returns the address of the named contract.
func (r *Registry) Get(name string) (util.Uint160, error) {
	h, ok := r.Contracts[name]
	if !ok {
		return util.Uint160{}, fmt.Errorf("contract %q is not in the %s registry", name, r.Network)
	}
	return h, nil
}

// Set records the address of the named contract.
func (r *Registry) Set(name string, h util.Uint160) {
	r.Contracts[name] = h
}

func registryPath(dir, network string) string {
	return filepath.Join(dir, network+".json")
}
