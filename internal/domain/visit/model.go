package visit

import "time"

// Visit is a scheduled site visit. Visits appear both in the standalone
// collection (dashboard, deadline scan) and embedded in their project.
type Visit struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	Location  string    `json:"location"`
	Purpose   string    `json:"purpose"`
	Notes     string    `json:"notes,omitempty"`
	Completed bool      `json:"completed"`
}
