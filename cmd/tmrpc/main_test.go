package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/tm-rpc/test/fake"
)

func execute(ctx context.Context, args ...string) (string, error) {
	cmd := newRootCmd(log.TestingLogger())
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestCmdStatus(t *testing.T) {
	node := fake.NewNode("0.34.29")
	defer node.Close()

	out, err := execute(context.Background(), "--address", node.URL(), "status")
	require.NoError(t, err)

	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Contains(t, status, "NodeInfo")
}

func TestCmdBlock_InvalidHeight(t *testing.T) {
	node := fake.NewNode("0.37.5")
	defer node.Close()

	_, err := execute(context.Background(), "--address", node.URL(), "block", "-1")
	assert.ErrorContains(t, err, "invalid height")
}

func TestCmdWaitTx(t *testing.T) {
	node := fake.NewNode("0.34.29")
	defer node.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	go func() {
		query := "tm.event='Tx' AND tx.hash='ABCD'"
		value := map[string]any{"TxResult": map[string]any{"height": "9", "index": 0, "tx": "AQID", "result": map[string]any{"code": 0}}}
		for node.Publish(query, "Tx", value, map[string][]string{"tx.hash": {"ABCD"}}) == 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(10 * time.Millisecond):
			}
		}
	}()

	out, err := execute(ctx, "--address", node.URL(), "wait-tx", "--hash", "0xabcd")
	require.NoError(t, err)

	var tx map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tx))
	assert.EqualValues(t, 9, tx["Height"])
}

func TestConfig_Headers(t *testing.T) {
	cmd := newRootCmd(log.TestingLogger())
	require.NoError(t, cmd.ParseFlags([]string{"--header", "Authorization=Bearer x", "--protocol-version", "comet-0.38"}))

	a := &app{v: viper.New(), logger: log.TestingLogger()}
	require.NoError(t, a.setupViper(cmd, ""))

	cfg, err := a.config()
	require.NoError(t, err)
	assert.Equal(t, "Bearer x", cfg.Headers["Authorization"])
	assert.EqualValues(t, "comet-0.38", cfg.Version)
}
