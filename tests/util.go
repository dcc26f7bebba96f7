package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// blockTime returns the timestamp (ms) of the latest block, i.e. the
// clock every contract invoked in it has seen.
func blockTime(t *testing.T, e *neotest.Executor) int64 {
	return int64(e.TopBlock(t).Timestamp)
}

// checkEvent looks up a notification by name among the events of an
// executed transaction and compares its argument tuple.
func checkEvent(t *testing.T, aer *state.AppExecResult, name string, items ...stackitem.Item) {
	for i := range aer.Events {
		if aer.Events[i].Name == name {
			require.Equal(t, stackitem.NewArray(items), aer.Events[i].Item)
			return
		}
	}
	require.Failf(t, "missing notification", "event %s not found", name)
}

// skipBlocks appends n empty blocks to the chain to let block time pass.
func skipBlocks(t *testing.T, e *neotest.Executor, n int) {
	for i := 0; i < n; i++ {
		e.AddNewBlock(t)
	}
}
