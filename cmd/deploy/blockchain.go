package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
)

// remoteBlockchain wraps the RPC client and the actor signing the
// deployment transactions.
type remoteBlockchain struct {
	rpc   *rpcclient.Client
	actor *actor.Actor
	mgmt  *management.Contract
	owner util.Uint160
}

// newRemoteBlockchain opens the deployer wallet and dials the Neo RPC
// server. Connection and all requests are done within 15s timeout.
func newRemoteBlockchain(endpoint, walletPath, password string) (*remoteBlockchain, error) {
	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	acc := w.Accounts[0]
	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt wallet account: %w", err)
	}

	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		return nil, fmt.Errorf("init actor: %w", err)
	}

	return &remoteBlockchain{
		rpc:   c,
		actor: act,
		mgmt:  management.New(act),
		owner: acc.ScriptHash(),
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// deployContract reads <dir>/<name>.nef and <dir>/<name>.manifest.json,
// deploys them with the given data and waits for the deployment to
// persist. A contract already deployed by the same account is left as is.
func (x *remoteBlockchain) deployContract(dir, name string, data any) (util.Uint160, error) {
	rawNEF, err := os.ReadFile(filepath.Join(dir, name+".nef"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("read NEF of %s: %w", name, err)
	}
	exe, err := nef.FileFromBytes(rawNEF)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("parse NEF of %s: %w", name, err)
	}

	rawManifest, err := os.ReadFile(filepath.Join(dir, name+".manifest.json"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("read manifest of %s: %w", name, err)
	}
	m := new(manifest.Manifest)
	err = json.Unmarshal(rawManifest, m)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("parse manifest of %s: %w", name, err)
	}

	h := state.CreateContractHash(x.owner, exe.Checksum, m.Name)
	_, err = x.rpc.GetContractStateByHash(h)
	if err == nil {
		return h, nil
	}

	_, err = x.actor.Wait(x.mgmt.Deploy(&exe, m, data))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("deploy %s: %w", name, err)
	}

	return h, nil
}
