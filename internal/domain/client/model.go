package client

import "time"

// Client is a customer of the practice. ProjectIDs mirrors the projects that
// reference this client and is maintained by SyncProject/UnlinkProject.
type Client struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	Company    string   `json:"company,omitempty"`
	ProjectIDs []string `json:"projects"`
}

// Stats is the per-client rollup shown in the client list.
type Stats struct {
	ProjectCount      int       `json:"projectCount"`
	ActiveProjects    int       `json:"activeProjects"`
	CompletedProjects int       `json:"completedProjects"`
	TotalBudget       float64   `json:"totalBudget"`
	TotalRevenue      float64   `json:"totalRevenue"`
	LastProjectStart  time.Time `json:"lastProjectStart"`
}

// Overview summarizes the whole client base.
type Overview struct {
	Total                int     `json:"total"`
	Active               int     `json:"active"`
	TotalRevenue         float64 `json:"totalRevenue"`
	AvgProjectsPerClient int     `json:"avgProjectsPerClient"`
}

// SortKey selects the ordering of the client list.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByProjects SortKey = "projects"
	SortByDate     SortKey = "date"
)
