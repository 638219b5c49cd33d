package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	WorkoutsReceived int `json:"workouts_received"`
	WorkoutsInserted int `json:"workouts_inserted"`
	WorkoutsUpdated  int `json:"workouts_updated"`
	WorkoutsSkipped  int `json:"workouts_skipped"`

	SetsReceived   int `json:"sets_received"`
	SetsInserted   int `json:"sets_inserted"`
	WarmupsSkipped int `json:"warmups_skipped"`

	// RejectedNames lists exercise names with no matching exercise type.
	RejectedNames []string `json:"rejected_names,omitempty"`

	Message string `json:"message,omitempty"`
}
