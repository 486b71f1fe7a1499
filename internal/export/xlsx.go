// Package export renders collections as downloadable spreadsheets.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vmonares/atelierdesk/internal/domain/client"
	"github.com/vmonares/atelierdesk/internal/domain/payment"
	"github.com/vmonares/atelierdesk/internal/domain/project"
)

const dateLayout = "2006-01-02"

// ClientsXLSX renders the client list with per-client project and revenue
// figures as an xlsx workbook.
func ClientsXLSX(clients []client.Client, projects []project.Project, payments []payment.Payment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Clients"
	f.SetSheetName("Sheet1", sheet)

	headers := []any{"Name", "Email", "Phone", "Company", "Address", "Projects", "Active", "Completed", "Total Budget", "Revenue"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}

	for i, c := range clients {
		st := client.ComputeStats(c, projects, payments)
		row := []any{
			c.Name, c.Email, c.Phone, c.Company, c.Address,
			st.ProjectCount, st.ActiveProjects, st.CompletedProjects,
			st.TotalBudget, st.TotalRevenue,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ProjectsXLSX renders the project list as an xlsx workbook.
func ProjectsXLSX(projects []project.Project) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Projects"
	f.SetSheetName("Sheet1", sheet)

	headers := []any{"Name", "Client", "Status", "Priority", "Start Date", "End Date", "Budget", "Progress", "Location", "Tasks", "Description"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}

	for i, p := range projects {
		row := []any{
			p.Name, p.ClientName, string(p.Status), string(p.Priority),
			formatDate(p.StartDate), formatDate(p.EndDate),
			p.Budget, fmt.Sprintf("%d%%", p.Progress), p.Location,
			len(p.Tasks), p.Description,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
