package main

import (
	"fmt"
	"io"

	candidateapimodels "smarthire-backend/models/api/candidate"
	reportapimodels "smarthire-backend/models/api/report"
	dbmodels "smarthire-backend/models/db"

	"github.com/jedib0t/go-pretty/v6/table"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	return tw
}

func renderCandidates(w io.Writer, list []candidateapimodels.CandidateView, rowCount int64) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"ID", "Full name", "Vacancy", "Department", "Status", "Stage", "Applied"})
	for _, item := range list {
		tw.AppendRow(table.Row{
			item.ID,
			item.FullName,
			item.Vacancy,
			item.Department,
			item.Status,
			fmt.Sprintf("%d. %s", item.StageIndex+1, item.StageName),
			item.CreatedAt.Format(timeLayout),
		})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "Total", rowCount})
	tw.Render()
}

func renderStages(w io.Writer, progress candidateapimodels.StageProgress) {
	tw := newTable(w)
	tw.SetTitle("Pipeline")
	tw.AppendHeader(table.Row{"#", "Stage", "State", "Owners", "Completed by", "At"})
	for _, stage := range progress.Stages {
		marker := ""
		if stage.Index == progress.CurrentIndex {
			marker = "▶ "
		}
		by, at := "", ""
		if stage.Entry != nil {
			by = stage.Entry.User
			at = stage.Entry.Timestamp.Format(timeLayout)
		}
		tw.AppendRow(table.Row{stage.Index + 1, marker + stage.Name, stage.State, fmt.Sprint(stage.Owners), by, at})
	}
	tw.Render()
}

func renderHistory(w io.Writer, history []dbmodels.AuditLog) {
	tw := newTable(w)
	tw.SetTitle("History")
	tw.AppendHeader(table.Row{"At", "User", "Role", "Action", "Details"})
	for _, entry := range history {
		tw.AppendRow(table.Row{entry.Timestamp.Format(timeLayout), entry.User, entry.Role.ToHuman(), entry.Action, entry.Details})
	}
	tw.Render()
}

func renderSummary(w io.Writer, summary reportapimodels.Summary) {
	tw := newTable(w)
	tw.SetTitle("Pipeline report")
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Total", summary.Total},
		{"Interview queue", summary.InterviewQueue},
		{"Surveillance queue", summary.SurveillanceQueue},
		{"Ready for offer", summary.ReadyForOffer},
		{"Offers accepted", summary.OffersAccepted},
		{"Hired", summary.Hired},
		{"Rejected", summary.Rejected},
		{"Tests completed", summary.TestsCompleted},
		{"Average test score", fmt.Sprintf("%.1f", summary.AverageTestScore)},
	})
	tw.Render()

	byStatus := newTable(w)
	byStatus.AppendHeader(table.Row{"Status", "Count"})
	for _, item := range summary.ByStatus {
		byStatus.AppendRow(table.Row{item.Status, item.Count})
	}
	byStatus.Render()

	byDepartment := newTable(w)
	byDepartment.AppendHeader(table.Row{"Department", "Candidates", "Hired"})
	for _, item := range summary.ByDepartment {
		byDepartment.AppendRow(table.Row{item.Department, item.Total, item.Hired})
	}
	byDepartment.Render()
}
