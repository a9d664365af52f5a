package network

// Transaction statuses reported by the gateway.
const (
	TxStatusPending  = "pending"
	TxStatusSuccess  = "success"
	TxStatusExecuted = "executed"
	TxStatusFail     = "fail"
	TxStatusInvalid  = "invalid"
)

// TransactionOnNetwork is the gateway's view of a finalized transaction.
// It is owned by the interactor and read-only to executors.
type TransactionOnNetwork struct {
	Transaction TransactionOnNetworkTransaction `json:"transaction"`
}

// TransactionOnNetworkTransaction holds the transaction fields and its side effects.
type TransactionOnNetworkTransaction struct {
	Type             string `json:"type,omitempty"`
	Hash             string `json:"hash"`
	Nonce            uint64 `json:"nonce"`
	Round            uint64 `json:"round,omitempty"`
	Epoch            uint32 `json:"epoch,omitempty"`
	Value            string `json:"value"`
	Receiver         string `json:"receiver"`
	Sender           string `json:"sender"`
	GasPrice         uint64 `json:"gasPrice"`
	GasLimit         uint64 `json:"gasLimit"`
	GasUsed          uint64 `json:"gasUsed,omitempty"`
	Data             []byte `json:"data,omitempty"`
	Signature        string `json:"signature,omitempty"`
	SourceShard      uint32 `json:"sourceShard"`
	DestinationShard uint32 `json:"destinationShard"`
	BlockNonce       uint64 `json:"blockNonce,omitempty"`
	BlockHash        string `json:"blockHash,omitempty"`
	Status           string `json:"status"`

	// SmartContractResults is nil when the gateway did not report any.
	SmartContractResults []SmartContractResult `json:"smartContractResults,omitempty"`
	Logs                 *Logs                 `json:"logs,omitempty"`
}

// IsFinal reports whether the status is terminal.
func (t TransactionOnNetworkTransaction) IsFinal() bool {
	switch t.Status {
	case TxStatusSuccess, TxStatusExecuted, TxStatusFail, TxStatusInvalid:
		return true
	default:
		return false
	}
}

// SmartContractResult is a VM-produced side transaction. Data is the raw data
// string, e.g. "@6f6b@2a" for a successful call returning 0x2a.
type SmartContractResult struct {
	Hash           string `json:"hash"`
	Nonce          uint64 `json:"nonce"`
	Value          string `json:"value"`
	Receiver       string `json:"receiver"`
	Sender         string `json:"sender"`
	Data           string `json:"data"`
	PrevTxHash     string `json:"prevTxHash,omitempty"`
	OriginalTxHash string `json:"originalTxHash,omitempty"`
	GasLimit       uint64 `json:"gasLimit,omitempty"`
	GasPrice       uint64 `json:"gasPrice,omitempty"`
	CallType       int    `json:"callType,omitempty"`
	ReturnMessage  string `json:"returnMessage,omitempty"`
	Logs           *Logs  `json:"logs,omitempty"`
}

// Logs groups the events emitted while executing a transaction.
type Logs struct {
	Address string  `json:"address"`
	Events  []Event `json:"events"`
}

// Event is a single log entry. Topics and Data are base64 on the wire.
type Event struct {
	Address    string   `json:"address"`
	Identifier string   `json:"identifier"`
	Topics     [][]byte `json:"topics"`
	Data       []byte   `json:"data,omitempty"`
}
