package deploy

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestRegistryRoundTrip(t *testing.T) {
	dir := t.TempDir()

	r := New("testnet")
	tokenHash := util.Uint160{1, 2, 3}
	shopHash := util.Uint160{4, 5, 6}
	r.Set(ContractToken, tokenHash)
	r.Set(ContractShop, shopHash)
	require.NoError(t, r.Save(dir))

	loaded, err := Load(dir, "testnet")
	require.NoError(t, err)
	require.Equal(t, "testnet", loaded.Network)

	h, err := loaded.Get(ContractToken)
	require.NoError(t, err)
	require.Equal(t, tokenHash, h)
	h, err = loaded.Get(ContractShop)
	require.NoError(t, err)
	require.Equal(t, shopHash, h)

	_, err = loaded.Get(ContractStaking)
	require.Error(t, err)
}

func TestRegistryLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir(), "mainnet")
	require.Error(t, err)
}
