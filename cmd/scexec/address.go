// cmd/scexec/address.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/scexec/internal/output"
	"github.com/altuslabsxyz/scexec/pkg/address"
)

type addressInfo struct {
	Bech32 string `json:"bech32"`
	Hex    string `json:"hex"`
}

func newAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address [bech32|hex]",
		Short: "Convert an address, or show the configured wallet address",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var a address.Address
			if len(args) == 1 {
				parsed, err := address.Parse(args[0])
				if err != nil {
					return err
				}
				a = parsed
			} else {
				w, err := loadWallet()
				if err != nil {
					return err
				}
				a = w.Address()
			}

			bech, err := a.ToBech32StringWithHRP(cfg.HRP.Value)
			if err != nil {
				return err
			}
			info := addressInfo{Bech32: bech, Hex: a.Hex()}

			if out.IsJSON() {
				return output.PrintJSON(out.Writer(), info)
			}
			tw := tabwriter.NewWriter(out.Writer(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Bech32:\t%s\n", info.Bech32)
			fmt.Fprintf(tw, "Hex:\t%s\n", info.Hex)
			return tw.Flush()
		},
	}
}

