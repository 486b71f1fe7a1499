package client

import (
	"sort"
	"strings"

	"github.com/vmonares/atelierdesk/internal/domain/payment"
	"github.com/vmonares/atelierdesk/internal/domain/project"
)

// ComputeStats rolls up one client against the project and payment
// collections. Revenue sums paid payments attached to the client's projects;
// the global payments collection is the single source of truth.
func ComputeStats(c Client, projects []project.Project, payments []payment.Payment) Stats {
	var st Stats
	owned := make(map[string]bool, len(projects))

	for _, p := range projects {
		if p.ClientID != c.ID && p.ClientName != c.Name {
			continue
		}
		owned[p.ID] = true
		st.ProjectCount++
		st.TotalBudget += p.Budget
		switch p.Status {
		case project.StatusInProgress:
			st.ActiveProjects++
		case project.StatusCompleted:
			st.CompletedProjects++
		}
		if p.StartDate.After(st.LastProjectStart) {
			st.LastProjectStart = p.StartDate
		}
	}

	for _, pay := range payments {
		if pay.Status == payment.StatusPaid && owned[pay.ProjectID] {
			st.TotalRevenue += pay.Amount
		}
	}
	return st
}

// ComputeOverview summarizes the whole client base.
func ComputeOverview(clients []Client, projects []project.Project, payments []payment.Payment) Overview {
	var o Overview
	o.Total = len(clients)
	totalProjects := 0
	for _, c := range clients {
		st := ComputeStats(c, projects, payments)
		if st.ActiveProjects > 0 {
			o.Active++
		}
		o.TotalRevenue += st.TotalRevenue
		totalProjects += st.ProjectCount
	}
	if o.Total > 0 {
		o.AvgProjectsPerClient = int(float64(totalProjects)/float64(o.Total) + 0.5)
	}
	return o
}

// WithStats pairs a client with its rollup for sorting.
type WithStats struct {
	Client
	Stats
}

// SortedList returns clients with stats ordered by the given key. Repeating
// the same key with descending=true flips the direction; the sort is stable
// so equal elements keep their insertion order.
func SortedList(clients []Client, projects []project.Project, payments []payment.Payment, key SortKey, descending bool) []WithStats {
	out := make([]WithStats, 0, len(clients))
	for _, c := range clients {
		out = append(out, WithStats{Client: c, Stats: ComputeStats(c, projects, payments)})
	}

	less := func(a, b WithStats) bool {
		switch key {
		case SortByProjects:
			return a.ProjectCount < b.ProjectCount
		case SortByDate:
			return a.LastProjectStart.Before(b.LastProjectStart)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
