package output

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/altuslabsxyz/scexec/internal/history"
	"github.com/altuslabsxyz/scexec/pkg/transaction"
)

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintSendable prints the transaction that would be sent.
func (l *Logger) PrintSendable(title string, tx transaction.SendableTransaction) error {
	if l.jsonMode {
		return PrintJSON(l.out, tx)
	}

	l.Bold(title)
	fmt.Fprintln(l.out, Rule())
	tw := tabwriter.NewWriter(l.out, 0, 0, 2, ' ', 0)
	sender := "(not set)"
	if tx.Sender != nil {
		sender = tx.Sender.String()
	}
	fmt.Fprintf(tw, "Sender:\t%s\n", sender)
	fmt.Fprintf(tw, "Receiver:\t%s\n", tx.Receiver)
	if tx.Function != "" {
		fmt.Fprintf(tw, "Function:\t%s\n", tx.Function)
	}
	fmt.Fprintf(tw, "Value:\t%s\n", tx.Value)
	fmt.Fprintf(tw, "Gas limit:\t%d\n", tx.GasLimit)
	for i, t := range tx.Transfers {
		fmt.Fprintf(tw, "Transfer %d:\t%s\n", i, t)
	}
	fmt.Fprintf(tw, "Data:\t%s\n", tx.Data)
	return tw.Flush()
}

// CallOutput is the printable outcome of a call or deployment.
type CallOutput struct {
	TxHash     string   `json:"txHash,omitempty"`
	Status     string   `json:"status,omitempty"`
	ReturnData []string `json:"returnData"`
	Decoded    any      `json:"decoded,omitempty"`
}

// NewCallOutput builds a CallOutput from raw return buffers.
func NewCallOutput(txHash, status string, raw [][]byte, decoded any) CallOutput {
	out := CallOutput{TxHash: txHash, Status: status, ReturnData: make([]string, len(raw)), Decoded: decoded}
	for i, b := range raw {
		out.ReturnData[i] = hex.EncodeToString(b)
	}
	return out
}

// PrintCallOutput prints the outcome of a call.
func (l *Logger) PrintCallOutput(o CallOutput) error {
	if l.jsonMode {
		return PrintJSON(l.out, o)
	}

	l.Success("Transaction %s (%s)", o.TxHash, o.Status)
	if len(o.ReturnData) == 0 {
		l.Info("  no return data")
	}
	for i, d := range o.ReturnData {
		l.Info("  [%d] %s", i, d)
	}
	if o.Decoded != nil {
		l.Info("  decoded: %v", o.Decoded)
	}
	return nil
}

// PrintRecords prints history records as a table.
func (l *Logger) PrintRecords(records []*history.Record) error {
	if l.jsonMode {
		if records == nil {
			records = []*history.Record{}
		}
		return PrintJSON(l.out, records)
	}
	if len(records) == 0 {
		l.Info("No history records found.")
		return nil
	}

	tw := tabwriter.NewWriter(l.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tSTATUS\tFUNCTION\tRECEIVER\tCREATED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Kind,
			statusColor(r.Status).Sprint(r.Status),
			orDash(r.Function),
			Truncate(r.Receiver, 20),
			r.CreatedAt.Local().Format(time.DateTime),
		)
	}
	return tw.Flush()
}

// PrintRecord prints a single record in detail.
func (l *Logger) PrintRecord(r *history.Record) error {
	if l.jsonMode {
		return PrintJSON(l.out, r)
	}

	l.Bold("Record %s", r.ID)
	fmt.Fprintln(l.out, Rule())
	tw := tabwriter.NewWriter(l.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Kind:\t%s\n", r.Kind)
	fmt.Fprintf(tw, "Status:\t%s\n", statusColor(r.Status).Sprint(r.Status))
	fmt.Fprintf(tw, "Created:\t%s\n", r.CreatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(tw, "Gateway:\t%s\n", orDash(r.GatewayURL))
	fmt.Fprintf(tw, "Sender:\t%s\n", orDash(r.Sender))
	fmt.Fprintf(tw, "Receiver:\t%s\n", r.Receiver)
	fmt.Fprintf(tw, "Function:\t%s\n", orDash(r.Function))
	fmt.Fprintf(tw, "Value:\t%s\n", r.Value)
	fmt.Fprintf(tw, "Gas limit:\t%d\n", r.GasLimit)
	fmt.Fprintf(tw, "Tx hash:\t%s\n", orDash(r.TxHash))
	for i, d := range r.ReturnData {
		fmt.Fprintf(tw, "Return [%d]:\t%s\n", i, d)
	}
	if r.Error != "" {
		fmt.Fprintf(tw, "Error:\t%s\n", r.Error)
	}
	fmt.Fprintf(tw, "Data:\t%s\n", Truncate(r.Data, 120))
	return tw.Flush()
}

func statusColor(s history.Status) *color.Color {
	switch s {
	case history.StatusSuccess:
		return color.New(color.FgGreen)
	case history.StatusFailed:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
