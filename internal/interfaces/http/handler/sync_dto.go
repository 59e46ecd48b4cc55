package handler

// SyncRunResponse is the summary returned after a completed run.
type SyncRunResponse struct {
	Status    string `json:"status"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Errors    int    `json:"errors"`
}
