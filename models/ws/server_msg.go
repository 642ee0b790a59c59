package wsmodels

const (
	CandidateChangedCode = "candidate_changed"
)

type ServerMessage struct {
	ToUserID string `json:"-"`
	Time     string `json:"time"` // event time, RFC3339
	Code     string `json:"code"` // event code
	Msg      string `json:"msg"`  // event payload, the candidate id for candidate_changed
}
