// internal/history/record.go
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes calls from deployments.
type Kind string

const (
	KindCall   Kind = "call"
	KindDeploy Kind = "deploy"
)

// Status is the outcome of a recorded operation.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCaptured Status = "captured" // not submitted
)

// Record is one journaled call or deployment.
type Record struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	CreatedAt  time.Time `json:"createdAt"`
	GatewayURL string    `json:"gatewayUrl,omitempty"`
	Sender     string    `json:"sender,omitempty"`
	Receiver   string    `json:"receiver"`
	Function   string    `json:"function,omitempty"`
	Data       string    `json:"data"`
	GasLimit   uint64    `json:"gasLimit"`
	Value      string    `json:"value"`
	Status     Status    `json:"status"`
	TxHash     string    `json:"txHash,omitempty"`
	ReturnData []string  `json:"returnData,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// NewID returns a time-ordered record ID, so IDs sort by creation time.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ListOptions filters List results.
type ListOptions struct {
	Kind   Kind
	Status Status
	Limit  int // 0 means no limit
}

func (o ListOptions) matches(r *Record) bool {
	if o.Kind != "" && r.Kind != o.Kind {
		return false
	}
	if o.Status != "" && r.Status != o.Status {
		return false
	}
	return true
}

// Store persists records. List returns the newest records first.
type Store interface {
	Create(ctx context.Context, r *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, opts ListOptions) ([]*Record, error)
	Close() error
}
