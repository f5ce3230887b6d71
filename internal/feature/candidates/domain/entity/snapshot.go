package entity

import "time"

// SnapshotStatus tells the renderer why a snapshot has, or lacks, records.
type SnapshotStatus string

const (
	StatusOK                 SnapshotStatus = "ok"
	StatusEmpty              SnapshotStatus = "empty"
	StatusUnconfigured       SnapshotStatus = "unconfigured"
	StatusConfigurationError SnapshotStatus = "configuration_error"
	StatusIntegrationError   SnapshotStatus = "integration_error"
	StatusSchemaError        SnapshotStatus = "schema_error"
)

// Snapshot is the normalized content of the candidate sheet as of FetchedAt.
// A failed fetch is still a Snapshot, carrying the failure in Status.
type Snapshot struct {
	Status    SnapshotStatus    `json:"status"`
	Columns   []string          `json:"columns,omitempty"`
	Records   []CandidateRecord `json:"records"`
	Error     string            `json:"error,omitempty"`
	ErrorKind string            `json:"errorKind,omitempty"`
	FetchedAt time.Time         `json:"fetchedAt"`
}

// Failed reports whether the snapshot represents a broken integration rather
// than a legitimately empty or unconfigured sheet.
func (s Snapshot) Failed() bool {
	switch s.Status {
	case StatusConfigurationError, StatusIntegrationError, StatusSchemaError:
		return true
	default:
		return false
	}
}
