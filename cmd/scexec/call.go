// cmd/scexec/call.go
package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/scexec/internal/config"
	"github.com/altuslabsxyz/scexec/internal/history"
	"github.com/altuslabsxyz/scexec/internal/output"
	"github.com/altuslabsxyz/scexec/pkg/address"
	"github.com/altuslabsxyz/scexec/pkg/codec"
	"github.com/altuslabsxyz/scexec/pkg/executor"
	"github.com/altuslabsxyz/scexec/pkg/transaction"
)

func newCallCmd() *cobra.Command {
	var (
		gasLimit  uint64
		value     string
		transfers []string
		outKind   string
		dryRun    bool
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "call <contract> <function> [args...]",
		Short: "Call a smart contract endpoint",
		Long: `Call a smart contract endpoint and wait for the result.

Arguments are typed as type:value where type is one of u64, u32, biguint, str,
bool, addr or hex. Untyped arguments are read as hex.`,
		Example: `  # Call a view-like endpoint and decode the result as u64
  scexec call erd1qqq...  getSum --output u64

  # Call with arguments and a token payment
  scexec call erd1qqq... deposit u64:7 str:memo --transfer WEGLD-abcdef:1000

  # Print the transaction without sending it
  scexec call erd1qqq... add u64:5 --dry-run`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.ApplyFlag(cmd, "gas-limit", &cfg.GasLimit, gasLimit)

			to, err := address.Parse(args[0])
			if err != nil {
				return err
			}
			callArgs, err := codec.ParseTypedArgs(args[2:])
			if err != nil {
				return err
			}
			v, err := parseValue(value)
			if err != nil {
				return err
			}
			tt, err := parseTransfers(transfers)
			if err != nil {
				return err
			}

			req := transaction.CallRequest{
				To:        to,
				Function:  args[1],
				Arguments: callArgs,
				GasLimit:  cfg.GasLimit.Value,
				Value:     v,
				Transfers: tt,
			}

			if dryRun {
				return runCallDryRun(cmd, req)
			}
			return runCall(cmd, req, outKind, yes)
		},
	}

	cmd.Flags().Uint64Var(&gasLimit, "gas-limit", config.DefaultGasLimit, "Gas limit")
	cmd.Flags().StringVar(&value, "value", "0", "Native value to send, in the smallest denomination")
	cmd.Flags().StringArrayVar(&transfers, "transfer", nil, "Token payment as TOKEN:amount or TOKEN:nonce:amount (repeatable)")
	cmd.Flags().StringVarP(&outKind, "output", "o", "raw", "Decode return data as raw, u64, biguint, str, bool, addr or unit")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the transaction without sending it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runCallDryRun(cmd *cobra.Command, req transaction.CallRequest) error {
	var caller *address.Address
	if w, err := loadWallet(); err == nil {
		a := w.Address()
		caller = &a
	}

	exec := executor.NewDummyTransactionExecutor(caller)
	if _, err := exec.ScCall(cmd.Context(), req); err != nil {
		return err
	}
	return out.PrintSendable("Dry run: transaction not sent", exec.TransactionDetails())
}

func runCall(cmd *cobra.Command, req transaction.CallRequest, outKind string, yes bool) error {
	w, err := loadWallet()
	if err != nil {
		return err
	}

	sender := w.Address()
	preview := executor.NewDummyTransactionExecutor(&sender)
	if _, err := preview.ScCall(cmd.Context(), req); err != nil {
		return err
	}
	if err := confirmSend(preview.TransactionDetails(), yes); err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	recording := history.NewRecordingExecutor(newNetworkExecutor(w), store)
	recording.SetLogger(logger)

	outcome, err := callAs(cmd.Context(), recording, req, outKind)
	if err != nil {
		return err
	}
	return out.PrintCallOutput(output.NewCallOutput(outcome.hash, outcome.status, outcome.raw, outcome.decoded))
}
