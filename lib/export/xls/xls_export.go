package xlsexport

import (
	"bytes"
	"fmt"
	stageresolver "smarthire-backend/lib/stage-resolver"
	reportapimodels "smarthire-backend/models/api/report"
	dbmodels "smarthire-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	candidatesSheet = "Candidates"
	summarySheet    = "Summary"
	dateFormat      = "02.01.2006"
)

type Provider interface {
	ExportCandidates(list []dbmodels.Candidate, summary reportapimodels.Summary) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var candidateHeaders = []string{"Full name", "Contacts", "Vacancy", "Department", "Status", "Stage", "Applied", "HR score", "Interview", "Test score", "Joining date"}

var summaryHeaders = []string{"Metric", "Value"}

func (i impl) ExportCandidates(list []dbmodels.Candidate, summary reportapimodels.Summary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("error closing xlsx file")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, candidateHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "error writing xlsx header")
	}
	if len(list) != 0 {
		if _, err = writeCandidateData(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "error writing candidates to xlsx")
		}
	}
	if err = f.SetSheetName(sheet, candidatesSheet); err != nil {
		return nil, errors.Wrap(err, "error renaming xlsx sheet")
	}
	if _, err = f.NewSheet(summarySheet); err != nil {
		return nil, errors.Wrap(err, "error creating summary sheet")
	}
	if err = writeSummary(f, summarySheet, summary); err != nil {
		return nil, errors.Wrap(err, "error writing summary to xlsx")
	}
	return f.WriteToBuffer()
}

func writeCandidateData(f *excelize.File, sheet string, list []dbmodels.Candidate, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(candidateHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			item.FullName,
			fmt.Sprintf("%v\r%v", item.Contact.Phone, item.Contact.Email),
			item.Vacancy,
			item.Department,
			string(item.Status),
			stageresolver.StageName(stageresolver.Index(item)),
			formatDate(item),
			item.Ratings.HR.Score,
			"",
			"",
			"",
		}
		if item.Interview != nil {
			values[8] = fmt.Sprintf("%v %v", item.Interview.Date, item.Interview.Time)
		}
		if item.PreEmploymentTest != nil {
			values[9] = fmt.Sprintf("%v/%v (%v)", item.PreEmploymentTest.Score, item.PreEmploymentTest.Total, item.PreEmploymentTest.Rating)
		}
		if item.Offer != nil {
			values[10] = item.Offer.JoiningDate
		}
		for idx, value := range values {
			if value == "" {
				continue
			}
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func writeSummary(f *excelize.File, sheet string, summary reportapimodels.Summary) error {
	row, err := writeHeader(f, sheet, 0, summaryHeaders)
	if err != nil {
		return err
	}
	lines := [][]interface{}{
		{"Total candidates", summary.Total},
		{"Waiting for interview", summary.InterviewQueue},
		{"Waiting for surveillance", summary.SurveillanceQueue},
		{"Ready for offer", summary.ReadyForOffer},
		{"Offers accepted", summary.OffersAccepted},
		{"Hired", summary.Hired},
		{"Rejected", summary.Rejected},
		{"Tests completed", summary.TestsCompleted},
		{"Average test score", summary.AverageTestScore},
	}
	for _, item := range summary.ByStatus {
		lines = append(lines, []interface{}{"Status: " + string(item.Status), item.Count})
	}
	for _, item := range summary.ByDepartment {
		lines = append(lines, []interface{}{"Department: " + item.Department, fmt.Sprintf("%v hired of %v", item.Hired, item.Total)})
	}
	if err = applyDataCellStyle(f, sheet, 1, row+1, len(summaryHeaders), row+len(lines)); err != nil {
		return err
	}
	for _, line := range lines {
		row++
		for idx, value := range line {
			if err = writeColumn(f, sheet, idx+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatDate(item dbmodels.Candidate) string {
	if item.CreatedAt.IsZero() {
		return ""
	}
	return item.CreatedAt.Format(dateFormat)
}
