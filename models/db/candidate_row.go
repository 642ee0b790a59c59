package dbmodels

// CandidateRow is the table representation of a Candidate. The searchable
// columns are copies of document fields kept for filtering and reports.
type CandidateRow struct {
	BaseModel
	Version    int       `gorm:"not null;default:0"`
	Status     string    `gorm:"type:varchar(64);index"`
	FullName   string    `gorm:"type:varchar(255)"`
	Vacancy    string    `gorm:"type:varchar(255);index"`
	Department string    `gorm:"type:varchar(255)"`
	Data       Candidate `gorm:"type:jsonb"`
}

func (CandidateRow) TableName() string {
	return "candidates"
}

func NewCandidateRow(c Candidate) CandidateRow {
	return CandidateRow{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
		},
		Version:    c.Version,
		Status:     string(c.Status),
		FullName:   c.FullName,
		Vacancy:    c.Vacancy,
		Department: c.Department,
		Data:       c,
	}
}
