package models

type ApplicationStatus string

const (
	StatusNew                 ApplicationStatus = "New"
	StatusInterviewScheduled  ApplicationStatus = "Interview Scheduled"
	StatusInterviewCompleted  ApplicationStatus = "Interview Completed"
	StatusPendingSurveillance ApplicationStatus = "Pending Surveillance"
	StatusSurveillanceCleared ApplicationStatus = "Surveillance Cleared"
	StatusSurveillanceFlagged ApplicationStatus = "Surveillance Flagged"
	StatusOfferAccepted       ApplicationStatus = "Offer Accepted"
	StatusJoiningScheduled    ApplicationStatus = "Joining Scheduled"
	StatusJoined              ApplicationStatus = "Joined"
	StatusRejected            ApplicationStatus = "Rejected"
)

var AllStatuses = []ApplicationStatus{
	StatusNew,
	StatusInterviewScheduled,
	StatusInterviewCompleted,
	StatusPendingSurveillance,
	StatusSurveillanceCleared,
	StatusSurveillanceFlagged,
	StatusOfferAccepted,
	StatusJoiningScheduled,
	StatusJoined,
	StatusRejected,
}

func (s ApplicationStatus) ToString() string {
	return string(s)
}

func (s ApplicationStatus) IsValid() bool {
	for _, item := range AllStatuses {
		if item == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the status.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case StatusJoined, StatusRejected, StatusSurveillanceFlagged:
		return true
	}
	return false
}
