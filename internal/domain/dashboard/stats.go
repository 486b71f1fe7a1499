// Package dashboard derives the headline figures shown on the overview
// screen. Everything here is a pure fold over the current collections.
package dashboard

import (
	"time"

	"github.com/vmonares/atelierdesk/internal/domain/payment"
	"github.com/vmonares/atelierdesk/internal/domain/project"
	"github.com/vmonares/atelierdesk/internal/domain/visit"
)

// Stats is the dashboard snapshot.
type Stats struct {
	TotalProjects     int     `json:"totalProjects"`
	ActiveProjects    int     `json:"activeProjects"`
	CompletedProjects int     `json:"completedProjects"`
	TotalBudget       float64 `json:"totalBudget"`
	ActiveBudget      float64 `json:"activeBudget"`
	TotalRevenue      float64 `json:"totalRevenue"`
	PendingRevenue    float64 `json:"pendingRevenue"`
	PendingPayments   int     `json:"pendingPayments"`
	UrgentPayments    int     `json:"urgentPayments"`
	OverduePayments   int     `json:"overduePayments"`
	OverdueAmount     float64 `json:"overdueAmount"`
	UpcomingVisits    int     `json:"upcomingVisits"`
}

// Compute folds the collections into a Stats snapshot. now anchors the
// urgency and overdue windows.
func Compute(projects []project.Project, payments []payment.Payment, visits []visit.Visit, now time.Time) Stats {
	var st Stats

	st.TotalProjects = len(projects)
	for _, p := range projects {
		st.TotalBudget += p.Budget
		switch p.Status {
		case project.StatusCompleted:
			st.CompletedProjects++
		case project.StatusInProgress:
			st.ActiveProjects++
			st.ActiveBudget += p.Budget
		}
	}

	// Urgent counts every pending payment due within the window, overdue
	// ones included.
	urgentCutoff := now.AddDate(0, 0, 7)
	for _, p := range payments {
		switch p.Status {
		case payment.StatusPaid:
			st.TotalRevenue += p.Amount
		case payment.StatusPending:
			st.PendingRevenue += p.Amount
			st.PendingPayments++
			if !p.DueDate.After(urgentCutoff) {
				st.UrgentPayments++
			}
			if p.DueDate.Before(now) {
				st.OverduePayments++
				st.OverdueAmount += p.Amount
			}
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, v := range visits {
		if !v.Completed && !v.Date.Before(today) {
			st.UpcomingVisits++
		}
	}
	return st
}
