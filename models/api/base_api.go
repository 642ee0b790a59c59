package apimodels

type Response struct {
	Status  string      `json:"status"`            // fail/success
	Message string      `json:"message,omitempty"` // error message
	Data    interface{} `json:"data,omitempty"`    // response payload
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"` // total number of rows matching the filter
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit far from int overflow.
	MaxPage = 1_000_000
)

type Pagination struct {
	Limit int `json:"limit"` // rows per page
	Page  int `json:"page"`  // page number (1,2,3..)
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = DefaultLimit
	if r.Page > 0 {
		page = min(r.Page, MaxPage)
	}
	if r.Limit > 0 {
		limit = min(r.Limit, MaxLimit)
	}
	return page, limit
}

// Bounds returns the slice bounds of the page within total rows.
func (r Pagination) Bounds(total int) (from, to int) {
	page, limit := r.GetPage()
	from = (page - 1) * limit
	if from > total {
		from = total
	}
	if from < 0 {
		from = 0
	}
	to = from + limit
	if to > total {
		to = total
	}
	return from, to
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}
