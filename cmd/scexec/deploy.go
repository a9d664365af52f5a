// cmd/scexec/deploy.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/scexec/internal/config"
	"github.com/altuslabsxyz/scexec/internal/history"
	"github.com/altuslabsxyz/scexec/internal/output"
	"github.com/altuslabsxyz/scexec/pkg/address"
	"github.com/altuslabsxyz/scexec/pkg/codec"
	"github.com/altuslabsxyz/scexec/pkg/executor"
	"github.com/altuslabsxyz/scexec/pkg/network"
	"github.com/altuslabsxyz/scexec/pkg/transaction"
)

// scDeployEvent is the log identifier carrying the new contract address as topic 0.
const scDeployEvent = "SCDeploy"

func newDeployCmd() *cobra.Command {
	var (
		gasLimit uint64
		value    string
		metadata transaction.CodeMetadata
		dryRun   bool
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "deploy <wasm-file> [init-args...]",
		Short: "Deploy a smart contract",
		Long: `Deploy compiled contract code. Init arguments use the same type:value syntax
as the call command.`,
		Example: `  scexec deploy ./adder.wasm u64:5 --gas-limit 60000000
  scexec deploy ./adder.wasm --payable --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.ApplyFlag(cmd, "gas-limit", &cfg.GasLimit, gasLimit)

			code, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read contract code: %w", err)
			}
			initArgs, err := codec.ParseTypedArgs(args[1:])
			if err != nil {
				return err
			}
			v, err := parseValue(value)
			if err != nil {
				return err
			}

			step := &executor.ScDeployStep{
				Code:         code,
				CodeMetadata: metadata,
				Arguments:    initArgs,
				GasLimit:     cfg.GasLimit.Value,
				Value:        v,
			}

			if dryRun {
				return runDeployDryRun(cmd, step)
			}
			return runDeploy(cmd, step, yes)
		},
	}

	cmd.Flags().Uint64Var(&gasLimit, "gas-limit", config.DefaultGasLimit, "Gas limit")
	cmd.Flags().StringVar(&value, "value", "0", "Native value to send, in the smallest denomination")
	cmd.Flags().BoolVar(&metadata.Upgradeable, "upgradeable", true, "Allow the contract to be upgraded")
	cmd.Flags().BoolVar(&metadata.Readable, "readable", false, "Allow other contracts to read the storage")
	cmd.Flags().BoolVar(&metadata.Payable, "payable", false, "Accept payments")
	cmd.Flags().BoolVar(&metadata.PayableBySC, "payable-by-sc", false, "Accept payments from contracts")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the transaction without sending it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runDeployDryRun(cmd *cobra.Command, step *executor.ScDeployStep) error {
	var caller *address.Address
	if w, err := loadWallet(); err == nil {
		a := w.Address()
		caller = &a
	}

	exec := executor.NewDummyDeployExecutor(caller)
	if err := exec.ScDeploy(cmd.Context(), step); err != nil {
		return err
	}
	return out.PrintSendable("Dry run: deployment not sent", exec.TransactionDetails())
}

func runDeploy(cmd *cobra.Command, step *executor.ScDeployStep, yes bool) error {
	w, err := loadWallet()
	if err != nil {
		return err
	}

	sender := w.Address()
	preview := *step
	preview.From = &sender
	if err := confirmSend(preview.ToSendableTransaction(), yes); err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	recording := history.NewRecordingDeployExecutor(newNetworkExecutor(w), store)
	recording.SetLogger(logger)

	if err := recording.ScDeploy(cmd.Context(), step); err != nil {
		return err
	}

	result := output.NewCallOutput(step.Response.Transaction.Hash, step.Response.Transaction.Status, step.ReturnData, nil)
	if contract, ok := deployedAddress(step.Response); ok {
		result.Decoded = contract.String()
	}
	return out.PrintCallOutput(result)
}

// deployedAddress looks up the new contract address in the deployment logs.
func deployedAddress(tx *network.TransactionOnNetwork) (address.Address, bool) {
	if tx == nil || tx.Transaction.Logs == nil {
		return address.Address{}, false
	}
	for _, ev := range tx.Transaction.Logs.Events {
		if ev.Identifier != scDeployEvent || len(ev.Topics) == 0 {
			continue
		}
		a, err := address.FromBytes(ev.Topics[0])
		if err != nil {
			continue
		}
		return a, true
	}
	return address.Address{}, false
}
