package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/axelarnetwork/tm-rpc/adapter"
	"github.com/axelarnetwork/tm-rpc/tendermint"
	"github.com/axelarnetwork/tm-rpc/transport"
)

const envPrefix = "TMRPC"

// config keys
const (
	keyAddress     = "address"
	keyEndpoint    = "endpoint"
	keyVersion     = "protocol_version"
	keyTimeout     = "timeout"
	keyHeaders     = "headers"
	keyMetricsAddr = "metrics_addr"
	keyLogLevel    = "log_level"
	keyReconnect   = "reconnect"
)

// app holds the clients shared by all commands. They are created before a command runs.
type app struct {
	v       *viper.Viper
	logger  log.Logger
	clients tendermint.Clients
	metrics *transport.Metrics
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("process", "tmrpc")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd(logger log.Logger) *cobra.Command {
	a := &app{v: viper.New(), logger: logger}
	var configFile string

	cmd := &cobra.Command{
		Use:              "tmrpc",
		Short:            "Query and subscribe to Tendermint and CometBFT nodes",
		TraverseChildren: true,
		SilenceUsage:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setupViper(cmd, configFile); err != nil {
				return err
			}
			return a.connect(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			return a.clients.Close(ctx)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to a config file")
	flags.String("address", tendermint.DefaultAddress, "node RPC address")
	flags.String("endpoint", tendermint.DefaultWSEndpoint, "websocket endpoint")
	flags.String("protocol-version", "", fmt.Sprintf("protocol version of the node, one of %v; detected if empty", adapter.Versions))
	flags.Duration("timeout", tendermint.DefaultTimeout, "request timeout")
	flags.StringSlice("header", nil, "additional request header as key=value")
	flags.String("metrics-addr", "", "serve prometheus metrics on this address if set")
	flags.String("log-level", "info", "log level (debug|info|error|none)")
	flags.Bool("reconnect", false, "re-dial the websocket connection on the next call after it was lost")

	cmd.AddCommand(
		CmdStatus(a),
		CmdBlock(a),
		CmdBlockResults(a),
		CmdTx(a),
		CmdValidators(a),
		CmdAbciQuery(a),
		CmdBroadcast(a),
		CmdSubscribe(a),
		CmdWaitEvent(a),
		CmdWaitTx(a),
	)

	return cmd
}

// setupViper reads settings in order of precedence from flags, TMRPC_* environment variables and the config file
func (a *app) setupViper(cmd *cobra.Command, configFile string) error {
	if configFile != "" {
		a.v.SetConfigFile(configFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()

	for key, flag := range map[string]string{
		keyAddress:     "address",
		keyEndpoint:    "endpoint",
		keyVersion:     "protocol-version",
		keyTimeout:     "timeout",
		keyHeaders:     "header",
		keyMetricsAddr: "metrics-addr",
		keyLogLevel:    "log-level",
		keyReconnect:   "reconnect",
	} {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}

	level, err := log.AllowLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	a.logger = log.NewFilter(a.logger, level)

	return nil
}

func (a *app) config() (tendermint.Config, error) {
	cfg := tendermint.DefaultConfig()
	cfg.Address = a.v.GetString(keyAddress)
	cfg.Endpoint = a.v.GetString(keyEndpoint)
	cfg.Timeout = a.v.GetDuration(keyTimeout)
	cfg.Reconnect = a.v.GetBool(keyReconnect)

	if version := a.v.GetString(keyVersion); version != "" {
		v, err := adapter.ParseVersion(version)
		if err != nil {
			return tendermint.Config{}, err
		}
		cfg.Version = v
	}

	headers := a.v.GetStringSlice(keyHeaders)
	if len(headers) > 0 {
		cfg.Headers = make(map[string]string, len(headers))
	}
	for _, header := range headers {
		key, value, ok := strings.Cut(header, "=")
		if !ok || key == "" {
			return tendermint.Config{}, fmt.Errorf("invalid header %q, expected key=value", header)
		}
		cfg.Headers[key] = value
	}

	return cfg, nil
}

func (a *app) connect(ctx context.Context) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}

	var opts []transport.Option
	if addr := a.v.GetString(keyMetricsAddr); addr != "" {
		a.metrics = a.serveMetrics(addr)
		opts = append(opts, transport.WithMetrics(a.metrics))
	}

	a.clients, err = tendermint.NewClients(ctx, cfg, a.logger, opts...)
	if err != nil {
		return err
	}

	a.logger.Info("connected to node", "address", cfg.Address, "version", a.clients.Query.ProtocolInfo().Version)
	return nil
}

func (a *app) serveMetrics(addr string) *transport.Metrics {
	registry := prometheus.NewRegistry()
	metrics := transport.NewMetrics(registry)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	go func() {
		a.logger.Info("serving metrics", "address", addr)
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", "error", err)
		}
	}()

	return metrics
}
