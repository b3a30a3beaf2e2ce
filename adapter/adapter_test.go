package adapter_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/tm-rpc/adapter"
	"github.com/axelarnetwork/tm-rpc/codec"
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

func mustAdapter(t *testing.T, version adapter.ProtocolVersion) adapter.Adapter {
	a, err := adapter.New(version)
	require.NoError(t, err)
	return a
}

func mustJSON(t *testing.T, s string) any {
	raw, err := codec.Unmarshal([]byte(s))
	require.NoError(t, err)
	return raw
}

func TestNew(t *testing.T) {
	for _, version := range adapter.Versions {
		a := mustAdapter(t, version)
		assert.Equal(t, version, a.Version())
		assert.Equal(t, version, a.Info().Version)
	}

	_, err := adapter.New("tendermint-0.33")
	assert.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	v, err := adapter.ParseVersion("COMET-0.38")
	assert.NoError(t, err)
	assert.Equal(t, adapter.Comet38, v)

	_, err = adapter.ParseVersion("0.38")
	assert.Error(t, err)
}

func TestVersionFromNodeVersion(t *testing.T) {
	tests := map[string]adapter.ProtocolVersion{
		"0.34.24":  adapter.Tendermint34,
		"v0.37.5":  adapter.Tendermint37,
		"0.38.12":  adapter.Comet38,
		"1.0.0":    adapter.Comet100,
		"unknown":  adapter.Tendermint34,
		"":         adapter.Tendermint34,
		" 0.38.0 ": adapter.Comet38,
	}

	for nodeVersion, expected := range tests {
		assert.Equal(t, expected, adapter.VersionFromNodeVersion(nodeVersion), nodeVersion)
	}
}

func TestAdapter_Capabilities(t *testing.T) {
	t.Run("WHEN the protocol predates CometBFT 0.38 THEN block_by_hash and header queries are unsupported", func(t *testing.T) {
		for _, version := range []adapter.ProtocolVersion{adapter.Tendermint34, adapter.Tendermint37} {
			a := mustAdapter(t, version)

			assert.False(t, a.Capabilities().BlockByHash)
			assert.False(t, a.Capabilities().HeaderQueries)
			assert.True(t, a.Capabilities().Subscriptions)
			assert.True(t, a.Capabilities().Streaming)
			assert.True(t, a.Capabilities().ConsensusQueries)
			assert.False(t, a.Supports(adapter.BlockByHash))
			assert.False(t, a.Supports(adapter.Header))
			assert.False(t, a.Supports(adapter.HeaderByHash))
			assert.True(t, a.Supports(adapter.BlockResults))
			assert.Len(t, a.SupportedMethods(), len(adapter.Methods)-3)
		}
	})

	t.Run("WHEN the protocol is CometBFT 0.38 or later THEN every method is supported", func(t *testing.T) {
		for _, version := range []adapter.ProtocolVersion{adapter.Comet38, adapter.Comet100} {
			a := mustAdapter(t, version)

			assert.True(t, a.Capabilities().BlockByHash)
			assert.True(t, a.Capabilities().HeaderQueries)
			assert.ElementsMatch(t, adapter.Methods, a.SupportedMethods())
		}
	})

	t.Run("WHEN the supported methods are modified THEN the adapter is unaffected", func(t *testing.T) {
		a := mustAdapter(t, adapter.Comet38)
		methods := a.SupportedMethods()
		methods[0] = "bogus"

		assert.Equal(t, adapter.Status, a.SupportedMethods()[0])
	})
}

func TestAdapter_EncodeParams(t *testing.T) {
	a := mustAdapter(t, adapter.Tendermint37)

	t.Run("WHEN broadcasting bytes THEN tx is base64 encoded", func(t *testing.T) {
		params, err := a.EncodeParams(adapter.BroadcastTxSync, types.BroadcastTxParams{Tx: []byte{1, 2, 3, 4, 5}})

		assert.NoError(t, err)
		assert.Equal(t, map[string]any{"tx": "AQIDBAU="}, params)
	})

	t.Run("WHEN broadcasting a generic map THEN it is routed through the typed encoder", func(t *testing.T) {
		params, err := a.EncodeParams(adapter.BroadcastTxCommit, map[string]any{"tx": []byte{1, 2, 3, 4, 5}})

		assert.NoError(t, err)
		assert.Equal(t, map[string]any{"tx": "AQIDBAU="}, params)
	})

	t.Run("WHEN a tx is not base64 THEN encoding fails", func(t *testing.T) {
		_, err := a.EncodeParams(adapter.BroadcastTxAsync, map[string]any{"tx": "not base64!"})

		var encErr *codec.EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Equal(t, "tx", encErr.Field)
		assert.True(t, errors.Is(err, codec.ErrEncoding))
	})

	t.Run("WHEN a tx hash is 0x-prefixed hex THEN it is sent as base64", func(t *testing.T) {
		params, err := a.EncodeParams(adapter.Tx, types.TxParams{Hash: "0x0102030405"})

		assert.NoError(t, err)
		assert.Equal(t, map[string]any{"hash": "AQIDBAU=", "prove": false}, params)
	})

	t.Run("WHEN a hash is malformed hex THEN encoding fails", func(t *testing.T) {
		_, err := a.EncodeParams(adapter.Tx, types.TxParams{Hash: "0xZZ"})

		assert.ErrorIs(t, err, codec.ErrEncoding)
	})

	t.Run("WHEN a height is given THEN it is sent as a decimal string", func(t *testing.T) {
		height := int64(9007199254740993)
		params, err := a.EncodeParams(adapter.Block, &types.HeightParams{Height: &height})

		assert.NoError(t, err)
		assert.Equal(t, map[string]any{"height": "9007199254740993"}, params)
	})

	t.Run("WHEN no height is given THEN the parameter is omitted", func(t *testing.T) {
		params, err := a.EncodeParams(adapter.BlockResults, types.HeightParams{})

		assert.NoError(t, err)
		assert.Equal(t, map[string]any{}, params)
	})

	t.Run("WHEN both blockchain bounds are given THEN they are sent positionally", func(t *testing.T) {
		minHeight, maxHeight := int64(1), int64(20)
		params, err := a.EncodeParams(adapter.Blockchain, types.BlockchainParams{MinHeight: &minHeight, MaxHeight: &maxHeight})

		assert.NoError(t, err)
		assert.Equal(t, []any{"1", "20"}, params)
	})

	t.Run("WHEN one blockchain bound is given THEN it is sent by name", func(t *testing.T) {
		params, err := a.EncodeParams(adapter.Blockchain, map[string]any{"min_height": 3})

		assert.NoError(t, err)
		assert.Equal(t, map[string]any{"minHeight": "3"}, params)
	})

	t.Run("WHEN searching txs with a camelCase map THEN keys become snake_case", func(t *testing.T) {
		params, err := a.EncodeParams(adapter.TxSearch, map[string]any{"query": "tx.height=5", "perPage": 30, "orderBy": "desc"})

		assert.NoError(t, err)
		assert.Equal(t, map[string]any{"query": "tx.height=5", "prove": false, "per_page": "30", "order_by": "desc"}, params)
	})

	t.Run("WHEN a method has no dedicated encoder THEN generic maps are converted key by key", func(t *testing.T) {
		params, err := a.EncodeParams(adapter.NetInfo, map[string]any{"someHash": "0xAB", "hash": "0x0102", "data": []byte{0xab}, "limit": 7, "skip": nil})

		assert.NoError(t, err)
		assert.Equal(t, map[string]any{"some_hash": "0xAB", "hash": "AQI=", "data": "AB", "limit": "7"}, params)
	})

	t.Run("WHEN a generic value cannot be represented THEN encoding fails", func(t *testing.T) {
		_, err := a.EncodeParams(adapter.Health, map[string]any{"x": struct{}{}})

		assert.ErrorIs(t, err, codec.ErrEncoding)
	})

	t.Run("WHEN parameters are nil THEN an empty object is sent", func(t *testing.T) {
		params, err := a.EncodeParams(adapter.Status, nil)

		assert.NoError(t, err)
		assert.Equal(t, map[string]any{}, params)
	})

	t.Run("WHEN typed parameters do not match the method THEN encoding fails", func(t *testing.T) {
		_, err := a.EncodeParams(adapter.Block, types.TxParams{})

		assert.ErrorIs(t, err, codec.ErrEncoding)
	})

	t.Run("WHEN querying the application THEN data is hex encoded", func(t *testing.T) {
		params, err := a.EncodeParams(adapter.AbciQuery, types.AbciQueryParams{Path: "/store/bank/key", Data: []byte{0xca, 0xfe}})

		assert.NoError(t, err)
		assert.Equal(t, map[string]any{"path": "/store/bank/key", "data": "CAFE", "prove": false}, params)
	})
}

const checkTxJSON = `{"code":0,"data":"","log":"[]","codespace":"","hash":"0102030405"}`

func TestAdapter_DecodeBroadcastTxAsync(t *testing.T) {
	t.Run("WHEN the protocol is Tendermint THEN async decodes like sync", func(t *testing.T) {
		for _, version := range []adapter.ProtocolVersion{adapter.Tendermint34, adapter.Tendermint37} {
			a := mustAdapter(t, version)
			raw := mustJSON(t, `{"code":0,"data":"","log":"","gas_wanted":"200000","gas_used":"0","hash":"0102030405"}`)

			sync, err := a.DecodeBroadcastTxSync(raw)
			require.NoError(t, err)
			async, err := a.DecodeBroadcastTxAsync(raw)
			require.NoError(t, err)

			assert.Equal(t, sync.Hash, async.Hash)
			assert.Equal(t, sync.GasWanted.String(), async.GasWanted.String())
			assert.Equal(t, "200000", async.GasWanted.String())
		}
	})

	t.Run("WHEN the protocol is CometBFT THEN async only reports mempool admission", func(t *testing.T) {
		a := mustAdapter(t, adapter.Comet38)

		result, err := a.DecodeBroadcastTxAsync(mustJSON(t, checkTxJSON))

		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3, 4, 5}, result.Hash)
		assert.Equal(t, "[]", result.Log)
		assert.True(t, result.GasWanted.IsNil())
	})

	t.Run("WHEN the hash is missing THEN decoding fails", func(t *testing.T) {
		_, err := mustAdapter(t, adapter.Comet100).DecodeBroadcastTxAsync(mustJSON(t, `{"code":0}`))

		var fieldErr *codec.InvalidFieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "hash", fieldErr.Field)
	})
}

func TestAdapter_DecodeBroadcastTxCommit(t *testing.T) {
	t.Run("WHEN the node reports deliver_tx THEN it is the execution result", func(t *testing.T) {
		a := mustAdapter(t, adapter.Tendermint37)

		commit, err := a.DecodeBroadcastTxCommit(mustJSON(t, `{"check_tx":{"code":0},"deliver_tx":{"code":5,"log":"out of gas"},"hash":"AB","height":"12"}`))

		require.NoError(t, err)
		result, ok := commit.ExecResult()
		assert.True(t, ok)
		assert.Equal(t, uint32(5), result.Code)
		assert.Nil(t, commit.TxResult)
		assert.Equal(t, int64(12), commit.Height)
	})

	t.Run("WHEN the node reports tx_result THEN it is the execution result", func(t *testing.T) {
		a := mustAdapter(t, adapter.Comet38)

		commit, err := a.DecodeBroadcastTxCommit(mustJSON(t, `{"check_tx":{"code":0},"tx_result":{"code":0,"gas_used":"150"},"hash":"AB","height":"12"}`))

		require.NoError(t, err)
		result, ok := commit.ExecResult()
		assert.True(t, ok)
		assert.Equal(t, int64(150), result.GasUsed.Int64())
		assert.Nil(t, commit.DeliverTx)
	})
}

func TestAdapter_DecodeBlockResults(t *testing.T) {
	t.Run("WHEN the protocol is Tendermint 0.34 THEN begin and end block events are decoded from base64", func(t *testing.T) {
		a := mustAdapter(t, adapter.Tendermint34)

		results, err := a.DecodeBlockResults(mustJSON(t, `{
			"height":"7",
			"txs_results":null,
			"begin_block_events":[{"type":"mint","attributes":[{"key":"YW1vdW50","value":"MTA=","index":true}]}],
			"end_block_events":[{"type":"complete","attributes":[]}]
		}`))

		require.NoError(t, err)
		assert.Equal(t, int64(7), results.Height)
		assert.Empty(t, results.TxsResults)
		require.Len(t, results.BeginBlockEvents, 1)
		assert.Equal(t, "amount", results.BeginBlockEvents[0].Attributes[0].Key)
		assert.Equal(t, "10", results.BeginBlockEvents[0].Attributes[0].Value)
		assert.Len(t, results.BlockEvents(), 2)
		assert.Empty(t, results.FinalizeBlockEvents)
	})

	t.Run("WHEN the protocol is CometBFT THEN finalize block events and the app hash are decoded", func(t *testing.T) {
		a := mustAdapter(t, adapter.Comet38)

		results, err := a.DecodeBlockResults(mustJSON(t, `{
			"height":"7",
			"txs_results":[{"code":0,"events":[{"type":"transfer","attributes":[{"key":"amount","value":"10"}]}]}],
			"finalize_block_events":[{"type":"mint","attributes":[{"key":"amount","value":"10"}]}],
			"begin_block_events":[{"type":"ignored"}],
			"app_hash":"AQID"
		}`))

		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, results.AppHash)
		require.Len(t, results.FinalizeBlockEvents, 1)
		assert.Empty(t, results.BeginBlockEvents)
		require.Len(t, results.TxsResults, 1)
		assert.Equal(t, "transfer", results.TxsResults[0].Events[0].Type)
	})

	t.Run("WHEN the height is missing THEN decoding fails", func(t *testing.T) {
		_, err := mustAdapter(t, adapter.Comet100).DecodeBlockResults(mustJSON(t, `{"txs_results":[]}`))

		assert.ErrorIs(t, err, codec.ErrInvalidField)
	})
}

const blockJSON = `{"header":{"chain_id":"axelar","height":"3","time":"2024-01-01T00:00:00Z"},"data":{"txs":["AQID"]},"last_commit":{"height":"2","round":0,"signatures":[]}}`

func TestAdapter_DecodeNewBlockEvent(t *testing.T) {
	t.Run("WHEN the protocol is Tendermint THEN begin and end block results are decoded", func(t *testing.T) {
		a := mustAdapter(t, adapter.Tendermint37)

		event, err := a.DecodeNewBlockEvent(mustJSON(t, fmt.Sprintf(`{
			"query":"tm.event='NewBlock'",
			"data":{"type":"tendermint/event/NewBlock","value":{
				"block":%s,
				"result_begin_block":{"events":[{"type":"mint","attributes":[{"key":"amount","value":"1"}]}]},
				"result_end_block":{"events":[]}
			}},
			"events":{"tm.event":["NewBlock"]}
		}`, blockJSON)))

		require.NoError(t, err)
		assert.Equal(t, int64(3), event.Block.Header.Height)
		require.Len(t, event.BeginBlockEvents, 1)
		assert.Equal(t, "1", event.BeginBlockEvents[0].Attributes[0].Value)
		assert.Empty(t, event.FinalizeBlockEvents)
	})

	t.Run("WHEN the protocol is CometBFT THEN finalize block results are decoded", func(t *testing.T) {
		a := mustAdapter(t, adapter.Comet38)

		event, err := a.DecodeNewBlockEvent(mustJSON(t, fmt.Sprintf(`{
			"data":{"type":"tendermint/event/NewBlock","value":{
				"block":%s,
				"block_id":{"hash":"ABCD","parts":{"total":1,"hash":"ABCD"}},
				"result_finalize_block":{"events":[{"type":"mint","attributes":[]}]}
			}}
		}`, blockJSON)))

		require.NoError(t, err)
		assert.Equal(t, "axelar", event.Block.Header.ChainID)
		assert.Len(t, event.FinalizeBlockEvents, 1)
		assert.Empty(t, event.BeginBlockEvents)
	})
}

func TestAdapter_DecodeTxEvent(t *testing.T) {
	a := mustAdapter(t, adapter.Tendermint34)

	event, err := a.DecodeTxEvent(mustJSON(t, `{
		"query":"tm.event='Tx'",
		"data":{"type":"tendermint/event/Tx","value":{"TxResult":{
			"height":"15","index":2,"tx":"AQID",
			"result":{"code":0,"events":[{"type":"transfer","attributes":[{"key":"c2VuZGVy","value":"YXhlbGFyMQ=="}]}]}
		}}},
		"events":{"tm.event":["Tx"],"transfer.sender":["axelar1"],"tx.height":["15"]}
	}`))

	require.NoError(t, err)
	assert.Equal(t, int64(15), event.Height)
	assert.Equal(t, uint32(2), event.Index)
	assert.Equal(t, []byte{1, 2, 3}, event.Tx)
	assert.Equal(t, "sender", event.Result.Events[0].Attributes[0].Key)
	assert.Equal(t, []string{"axelar1"}, event.Events["transfer.sender"])
}

func TestAdapter_DecodeResponse(t *testing.T) {
	t.Run("WHEN the method is known THEN the matching record is returned", func(t *testing.T) {
		a := mustAdapter(t, adapter.Tendermint37)

		decoded, err := a.DecodeResponse(adapter.BroadcastTxAsync, mustJSON(t, checkTxJSON))

		require.NoError(t, err)
		assert.IsType(t, types.BroadcastTxResult{}, decoded)
	})

	t.Run("WHEN the method is overridden THEN dispatch reaches the override", func(t *testing.T) {
		a := mustAdapter(t, adapter.Tendermint37)

		decoded, err := a.DecodeResponse(adapter.BlockResults, mustJSON(t, `{"height":"1","begin_block_events":[{"type":"mint"}]}`))

		require.NoError(t, err)
		assert.Len(t, decoded.(types.BlockResults).BeginBlockEvents, 1)
	})

	t.Run("WHEN the method is unknown THEN the raw result is passed through", func(t *testing.T) {
		a := mustAdapter(t, adapter.Comet100)
		raw := map[string]any{"anything": "goes"}

		decoded, err := a.DecodeResponse("custom_method", raw)

		assert.NoError(t, err)
		assert.Equal(t, raw, decoded)
	})

	t.Run("WHEN abci_info is wrapped in response THEN it is unwrapped", func(t *testing.T) {
		a := mustAdapter(t, adapter.Comet38)

		decoded, err := a.DecodeResponse(adapter.AbciInfo, mustJSON(t, `{"response":{"data":"axelar","version":"v1.0.0","last_block_height":"42"}}`))

		require.NoError(t, err)
		info := decoded.(types.AbciInfo)
		assert.Equal(t, "axelar", info.Data)
		assert.Equal(t, int64(42), info.LastBlockHeight)
	})

	t.Run("WHEN num_unconfirmed_txs is decoded THEN n_txs becomes the count", func(t *testing.T) {
		a := mustAdapter(t, adapter.Tendermint34)

		decoded, err := a.DecodeResponse(adapter.NumUnconfirmedTxs, mustJSON(t, `{"n_txs":"3","total":"10","total_bytes":"512","txs":null}`))

		require.NoError(t, err)
		unconfirmed := decoded.(types.UnconfirmedTxs)
		assert.Equal(t, 3, unconfirmed.Count)
		assert.Equal(t, 10, unconfirmed.Total)
		assert.Equal(t, int64(512), unconfirmed.TotalBytes)
	})
}
