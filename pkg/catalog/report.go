package catalog

import "fmt"

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeUpdated Outcome = "updated"
	OutcomeCreated Outcome = "created"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Operations a row passes through, in order.
const (
	OpNormalize    = "normalize"
	OpStoreVideo   = "video_info"
	OpStoreVariant = "download_vid"
	OpProduct      = "product"
	OpPrice        = "price"
)

// RowResult is the structured outcome of one sub-operation on one row. Log
// strings are rendered from these at the HTTP boundary only.
type RowResult struct {
	VID       string  `json:"vid"`
	Operation string  `json:"operation"`
	Outcome   Outcome `json:"outcome"`
	Detail    string  `json:"detail,omitempty"`
}

// Report collects the per-row results of one synchronization batch.
type Report struct {
	BatchID   string      `json:"batch_id"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Results   []RowResult `json:"results"`
}

func (r *Report) add(result RowResult) {
	r.Results = append(r.Results, result)
}

func (r *Report) addFailed(vid, operation string, err error) {
	r.add(RowResult{VID: vid, Operation: operation, Outcome: OutcomeFailed, Detail: err.Error()})
}

// Logs renders the results as human-readable status lines, one per
// sub-operation, in processing order.
func (r *Report) Logs() []string {
	logs := make([]string, 0, len(r.Results))
	for _, result := range r.Results {
		line := fmt.Sprintf("%s %s: %s", result.Operation, result.Outcome, result.VID)
		if result.Detail != "" {
			line += " (" + result.Detail + ")"
		}
		logs = append(logs, line)
	}
	return logs
}

// Message summarizes the batch the way the old admin tool did.
func (r *Report) Message() string {
	return fmt.Sprintf("synced %d rows, %d failed", r.Succeeded, r.Failed)
}
