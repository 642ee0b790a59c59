// Package applicanthistory builds and reads the candidate audit trail.
package applicanthistory

import (
	candidateapimodels "smarthire-backend/models/api/candidate"
	dbmodels "smarthire-backend/models/db"
)

// List returns one page of the candidate history in insertion order and the
// number of entries matching the filter.
func List(c dbmodels.Candidate, filter candidateapimodels.HistoryFilter) ([]candidateapimodels.HistoryView, int64) {
	matched := make([]dbmodels.AuditLog, 0, len(c.StatusHistory))
	for _, rec := range c.StatusHistory {
		if filter.Kind != "" && rec.Kind != filter.Kind {
			continue
		}
		matched = append(matched, rec)
	}
	from, to := filter.Bounds(len(matched))
	result := make([]candidateapimodels.HistoryView, 0, to-from)
	for _, rec := range matched[from:to] {
		result = append(result, candidateapimodels.HistoryView{
			AuditLog: rec,
			RoleName: rec.Role.ToHuman(),
		})
	}
	return result, int64(len(matched))
}
