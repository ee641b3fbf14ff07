package pending

import (
	"fmt"
	"time"
)

// RecordError ties a sync failure to the record that stays queued.
type RecordError struct {
	TempID  string `json:"temp_id"`
	Message string `json:"message"`
}

// SyncResult is the aggregate outcome of one sync pass. Partial failure is
// a normal outcome, not an error: the caller always receives counts.
type SyncResult struct {
	Kind         Kind          `json:"kind"`
	SuccessCount int           `json:"success_count"`
	ErrorCount   int           `json:"error_count"`
	Errors       []RecordError `json:"errors,omitempty"`
	Duration     time.Duration `json:"duration"`
}

func (r *SyncResult) AddError(tempID string, err error) {
	r.ErrorCount++
	r.Errors = append(r.Errors, RecordError{TempID: tempID, Message: err.Error()})
}

func (r *SyncResult) String() string {
	return fmt.Sprintf("%d uploaded, %d failed", r.SuccessCount, r.ErrorCount)
}
