package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/tm-rpc/codec"
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

const statusJSON = `{
  "node_info": {
    "protocol_version": {"p2p": "8", "block": "11", "app": "0"},
    "id": "5576458aef205977e18fd50b274e9b5d9014525a",
    "listen_addr": "tcp://0.0.0.0:26656",
    "network": "axelar-dojo-1",
    "version": "0.37.5",
    "channels": "40202122233038606100",
    "moniker": "node",
    "other": {"tx_index": "on", "rpc_address": "tcp://0.0.0.0:26657"}
  },
  "sync_info": {
    "latest_block_hash": "790BA84C3545FCCC49A5C629CEE6EA58A6E875C3862175BDC11EE7AF54703501",
    "latest_app_hash": "C9AEBB441B787D9F1D846DE51F3826F4FD386108B59B08239653ABF59455C3F8",
    "latest_block_height": "9223372036854775807",
    "latest_block_time": "2023-10-01T12:00:00.123456789Z",
    "catching_up": false
  },
  "validator_info": {
    "address": "5D6A51A8E9899C44079C6AF90618BA0369070E6E",
    "pub_key": {"type": "tendermint/PubKeyEd25519", "value": "A6DoBUypNtUAyEHWtQ9bFjfNg8Bo9CrnkUGl6k6OHN4="},
    "voting_power": "100"
  }
}`

func TestStatusCodec(t *testing.T) {
	status, err := types.StatusCodec.Decode([]byte(statusJSON))
	require.NoError(t, err)

	assert.Equal(t, "0.37.5", status.NodeInfo.Version)
	assert.Equal(t, uint64(11), status.NodeInfo.ProtocolVersion.Block)
	assert.Equal(t, int64(9223372036854775807), status.SyncInfo.LatestBlockHeight)
	assert.Equal(t, time.Date(2023, 10, 1, 12, 0, 0, 123456789, time.UTC), status.SyncInfo.LatestBlockTime.UTC())
	assert.Equal(t, "on", status.NodeInfo.Other.TxIndex)
	assert.Equal(t, int64(100), status.ValidatorInfo.VotingPower.Int64())
	assert.Len(t, status.ValidatorInfo.PubKey.Value, 32)
	assert.True(t, status.SyncInfo.EarliestBlockTime.IsZero())
}

func TestValidatorsCodec(t *testing.T) {
	t.Run("WHEN pagination is missing THEN count and total are absent", func(t *testing.T) {
		validators, err := types.ValidatorsCodec.Decode([]byte(`{"block_height":"10","validators":[{"address":"ABCD","voting_power":"5","proposer_priority":"-3"}]}`))

		require.NoError(t, err)
		assert.Nil(t, validators.Count)
		assert.Nil(t, validators.Total)
		require.Len(t, validators.Validators, 1)
		assert.Equal(t, int64(-3), validators.Validators[0].ProposerPriority.Int64())
	})

	t.Run("WHEN pagination is present THEN it is decoded", func(t *testing.T) {
		validators, err := types.ValidatorsCodec.Decode([]byte(`{"block_height":"10","validators":[],"count":"0","total":"7"}`))

		require.NoError(t, err)
		require.NotNil(t, validators.Total)
		assert.Equal(t, 7, *validators.Total)
		assert.Equal(t, 0, *validators.Count)
	})
}

func TestEventCodec(t *testing.T) {
	t.Run("WHEN attributes are base64 encoded THEN they are decoded to text", func(t *testing.T) {
		event, err := types.EventCodec(types.Base64Attributes).Decode([]byte(`{"type":"transfer","attributes":[{"key":"cmVjaXBpZW50","value":"YXhlbGFyMQ==","index":true}]}`))

		require.NoError(t, err)
		assert.Equal(t, types.Event{Type: "transfer", Attributes: []types.EventAttribute{{Key: "recipient", Value: "axelar1", Index: true}}}, event)
	})

	t.Run("WHEN attributes are plain text THEN they are kept", func(t *testing.T) {
		event, err := types.EventCodec(types.PlainAttributes).Decode([]byte(`{"type":"transfer","attributes":[{"key":"recipient","value":"axelar1"}]}`))

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"recipient": "axelar1"}, event.AttributeMap())
		assert.Equal(t, "transfer", event.ToABCI().Type)
	})
}

func TestBlockResultsCodec(t *testing.T) {
	raw := `{
	  "height": "12",
	  "txs_results": [{"code": 0, "gas_wanted": "200000", "gas_used": "80000", "events": [{"type": "message", "attributes": [{"key": "action", "value": "send"}]}]}],
	  "begin_block_events": [{"type": "mint"}],
	  "end_block_events": [{"type": "rewards"}],
	  "finalize_block_events": [{"type": "finalize"}],
	  "app_hash": "AQID"
	}`
	events := types.EventCodec(types.PlainAttributes)

	t.Run("WHEN the layout has begin and end block events THEN finalize events are ignored", func(t *testing.T) {
		results, err := types.BlockResultsCodec(events, types.BeginEndBlockLayout).Decode([]byte(raw))

		require.NoError(t, err)
		assert.Equal(t, int64(12), results.Height)
		assert.Len(t, results.BeginBlockEvents, 1)
		assert.Len(t, results.EndBlockEvents, 1)
		assert.Empty(t, results.FinalizeBlockEvents)
		assert.Equal(t, []string{"mint", "rewards"}, eventTypes(results.BlockEvents()))
		assert.Equal(t, int64(80000), results.TxsResults[0].GasUsed.Int64())
	})

	t.Run("WHEN the layout has finalize block events THEN begin and end block events are ignored", func(t *testing.T) {
		results, err := types.BlockResultsCodec(events, types.FinalizeBlockLayout).Decode([]byte(raw))

		require.NoError(t, err)
		assert.Empty(t, results.BeginBlockEvents)
		assert.Equal(t, []string{"finalize"}, eventTypes(results.BlockEvents()))
		assert.Equal(t, []byte{1, 2, 3}, results.AppHash)
	})

	t.Run("WHEN the height is missing THEN decoding fails", func(t *testing.T) {
		_, err := types.BlockResultsCodec(events, types.FinalizeBlockLayout).Decode([]byte(`{}`))
		assert.ErrorIs(t, err, codec.ErrInvalidField)
	})
}

func TestParamsCodecs(t *testing.T) {
	t.Run("WHEN blockchain params are encoded THEN the server's camelCase names are used", func(t *testing.T) {
		minHeight, maxHeight := int64(1), int64(20)
		params := types.BlockchainParams{MinHeight: &minHeight, MaxHeight: &maxHeight}

		wire, err := types.BlockchainParamsCodec.Encode(params)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"minHeight": "1", "maxHeight": "20"}, wire)

		decoded, err := types.BlockchainParamsCodec.Create(wire)
		assert.NoError(t, err)
		assert.Equal(t, params, decoded)
	})

	t.Run("WHEN search params are encoded THEN pagination is stringified", func(t *testing.T) {
		page, perPage := 2, 50
		params := types.TxSearchParams{Query: "tx.height=5", Page: &page, PerPage: &perPage, OrderBy: "desc"}

		wire, err := types.TxSearchParamsCodec.Encode(params)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"query": "tx.height=5", "prove": false, "page": "2", "per_page": "50", "order_by": "desc"}, wire)

		decoded, err := types.TxSearchParamsCodec.Create(wire)
		assert.NoError(t, err)
		assert.Equal(t, params, decoded)
	})

	t.Run("WHEN abci query data is encoded THEN it is hex", func(t *testing.T) {
		wire, err := types.AbciQueryParamsCodec.Encode(types.AbciQueryParams{Path: "/store/bank/key", Data: []byte{0xab, 0xcd}})

		require.NoError(t, err)
		assert.Equal(t, "ABCD", wire["data"])
	})
}

func TestParamsCodecs_RoundTrip(t *testing.T) {
	height, minHeight, maxHeight := int64(1024), int64(1), int64(20)
	page, perPage := 2, 50

	t.Run("blockchain", func(t *testing.T) {
		testCases := []types.BlockchainParams{
			{},
			{MinHeight: &minHeight},
			{MinHeight: &minHeight, MaxHeight: &maxHeight},
		}
		for _, params := range testCases {
			assertRoundTrip(t, types.BlockchainParamsCodec, params, params)
		}
	})

	t.Run("tx", func(t *testing.T) {
		testCases := []struct {
			params   types.TxParams
			expected types.TxParams
		}{
			{types.TxParams{Hash: "q80="}, types.TxParams{Hash: "q80="}},
			{types.TxParams{Hash: "AQIDBAU=", Prove: true}, types.TxParams{Hash: "AQIDBAU=", Prove: true}},
			{types.TxParams{Hash: "0xABCD"}, types.TxParams{Hash: "q80="}},
			{types.TxParams{Hash: "0x0102030405", Prove: true}, types.TxParams{Hash: "AQIDBAU=", Prove: true}},
		}
		for _, tc := range testCases {
			assertRoundTrip(t, types.TxParamsCodec, tc.params, tc.expected)
		}
	})

	t.Run("hash", func(t *testing.T) {
		assertRoundTrip(t, types.HashParamsCodec, types.HashParams{Hash: "0xABCD"}, types.HashParams{Hash: "q80="})
		assertRoundTrip(t, types.HashParamsCodec, types.HashParams{Hash: "q80="}, types.HashParams{Hash: "q80="})
	})

	t.Run("validators", func(t *testing.T) {
		testCases := []types.ValidatorsParams{
			{},
			{Height: &height},
			{Height: &height, Page: &page, PerPage: &perPage},
			{Page: &page},
		}
		for _, params := range testCases {
			assertRoundTrip(t, types.ValidatorsParamsCodec, params, params)
		}
	})

	t.Run("abci query", func(t *testing.T) {
		testCases := []types.AbciQueryParams{
			{Path: "/store/bank/key"},
			{Path: "/store/bank/key", Data: []byte{0xab, 0xcd}},
			{Path: "/cosmos.bank.v1beta1.Query/Balance", Data: []byte{0x0a, 0x01}, Height: &height, Prove: true},
		}
		for _, params := range testCases {
			assertRoundTrip(t, types.AbciQueryParamsCodec, params, params)
		}
	})
}

// assertRoundTrip checks that decoding the encoded params yields expected, and that encoding is stable from then on
func assertRoundTrip[T any](t *testing.T, c codec.Codec[T], params T, expected T) {
	t.Helper()

	wire, err := c.Encode(params)
	require.NoError(t, err)

	decoded, err := c.Create(wire)
	require.NoError(t, err)
	assert.Equal(t, expected, decoded)

	again, err := c.Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, wire, again)
}

func eventTypes(events []types.Event) []string {
	var out []string
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
