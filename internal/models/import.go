package models

import "time"

type ImportState string

const (
	ImportStateInit       ImportState = "init"
	ImportStateResetting  ImportState = "resetting"
	ImportStateProcessing ImportState = "processing"
	ImportStateDone       ImportState = "done"
	ImportStateFailed     ImportState = "failed"
)

// ImportReport summarises one full reload.
type ImportReport struct {
	RunID            string      `json:"run_id" example:"0b6f6f0e-7d1a-4c1e-9b53-3f5b2a1c9d10"`
	Source           string      `json:"source" example:"movies.csv"`
	State            ImportState `json:"state" example:"done"`
	RowsDeleted      int64       `json:"rows_deleted" example:"0"`
	RecordsRead      int         `json:"records_read" example:"1000"`
	MoviesLoaded     int         `json:"movies_loaded" example:"998"`
	RecordsSkipped   int         `json:"records_skipped" example:"2"`
	RecordsFailed    int         `json:"records_failed" example:"0"`
	GenresCreated    int         `json:"genres_created" example:"20"`
	ActorsCreated    int         `json:"actors_created" example:"2394"`
	DirectorsCreated int         `json:"directors_created" example:"644"`
	LinksWritten     int         `json:"links_written" example:"7554"`
	ErrorMessage     string      `json:"error_message,omitempty"`
	StartedAt        time.Time   `json:"started_at"`
	FinishedAt       time.Time   `json:"finished_at"`
}
