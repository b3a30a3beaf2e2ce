package adapter

import (
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

// cometAdapter speaks CometBFT 0.38 and 1.0. Blocks are executed in FinalizeBlock, so block results carry
// finalize block events and the app hash, and broadcast_tx_commit reports tx_result instead of deliver_tx.
// Both shapes are the defaults of base, so only the method set differs.
type cometAdapter struct {
	*base
}

func newCometAdapter(version ProtocolVersion) *cometAdapter {
	a := &cometAdapter{base: newBase(version, types.PlainAttributes)}
	a.bind(a)
	return a
}
