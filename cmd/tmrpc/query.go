package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

// CmdStatus returns a cli command to print the node status
func CmdStatus(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the node status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := a.clients.Query.Status(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	}
}

// CmdBlock returns a cli command to print a block
func CmdBlock(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "block [height]",
		Short: "Print the block at the given height, or the latest block",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			height, err := optionalHeight(args)
			if err != nil {
				return err
			}

			block, err := a.clients.Query.Block(cmd.Context(), height)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), block)
		},
	}
}

// CmdBlockResults returns a cli command to print the execution results of a block
func CmdBlockResults(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "block-results [height]",
		Short: "Print the results of the block at the given height, or of the latest block",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			height, err := optionalHeight(args)
			if err != nil {
				return err
			}

			results, err := a.clients.Query.BlockResults(cmd.Context(), height)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}
}

// CmdTx returns a cli command to print a transaction by hash
func CmdTx(a *app) *cobra.Command {
	var prove bool
	cmd := &cobra.Command{
		Use:   "tx <hash>",
		Short: "Print the transaction with the given hex hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := a.clients.Query.Tx(cmd.Context(), strings.TrimPrefix(args[0], "0x"), prove)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tx)
		},
	}
	cmd.Flags().BoolVar(&prove, "prove", false, "include the inclusion proof")
	return cmd
}

// CmdValidators returns a cli command to print the validator set
func CmdValidators(a *app) *cobra.Command {
	var page, perPage int
	cmd := &cobra.Command{
		Use:   "validators [height]",
		Short: "Print the validator set at the given height, or at the latest height",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			height, err := optionalHeight(args)
			if err != nil {
				return err
			}

			params := types.ValidatorsParams{Height: height}
			if page > 0 {
				params.Page = &page
			}
			if perPage > 0 {
				params.PerPage = &perPage
			}

			validators, err := a.clients.Query.Validators(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), validators)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "validators per page")
	return cmd
}

// CmdAbciQuery returns a cli command to query the application
func CmdAbciQuery(a *app) *cobra.Command {
	var (
		height int64
		prove  bool
	)
	cmd := &cobra.Command{
		Use:   "abci-query <path> [hex data]",
		Short: "Query the application state",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := types.AbciQueryParams{Path: args[0], Prove: prove}
			if len(args) == 2 {
				data, err := hex.DecodeString(strings.TrimPrefix(args[1], "0x"))
				if err != nil {
					return fmt.Errorf("invalid data: %w", err)
				}
				params.Data = data
			}
			if height > 0 {
				params.Height = &height
			}

			result, err := a.clients.Query.AbciQuery(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().Int64Var(&height, "height", 0, "query the state at this height")
	cmd.Flags().BoolVar(&prove, "prove", false, "include a merkle proof")
	return cmd
}

// broadcast modes
const (
	modeSync   = "sync"
	modeAsync  = "async"
	modeCommit = "commit"
)

// CmdBroadcast returns a cli command to broadcast a raw transaction
func CmdBroadcast(a *app) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "broadcast <hex tx>",
		Short: "Broadcast a signed transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
			if err != nil {
				return fmt.Errorf("invalid transaction: %w", err)
			}

			var result any
			switch mode {
			case modeSync:
				result, err = a.clients.Query.BroadcastTxSync(cmd.Context(), tx)
			case modeAsync:
				result, err = a.clients.Query.BroadcastTxAsync(cmd.Context(), tx)
			case modeCommit:
				result, err = a.clients.Query.BroadcastTxCommit(cmd.Context(), tx)
			default:
				return fmt.Errorf("unknown broadcast mode %q", mode)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", modeSync, fmt.Sprintf("broadcast mode (%s|%s|%s)", modeSync, modeAsync, modeCommit))
	return cmd
}

func optionalHeight(args []string) (*int64, error) {
	if len(args) == 0 {
		return nil, nil
	}

	height, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || height <= 0 {
		return nil, fmt.Errorf("invalid height %q", args[0])
	}
	return &height, nil
}

func printJSON(w io.Writer, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bz))
	return err
}
