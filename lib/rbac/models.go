package rbac

import (
	"smarthire-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

// route is one compiled rule. A "{name}" segment matches any single path
// segment and is captured in order.
type route struct {
	method   HTTPMethod
	segments []string
	params   int
	handler  models.RbacFunc
}

func isParam(segment string) bool {
	return len(segment) > 2 && segment[0] == '{' && segment[len(segment)-1] == '}'
}

// match returns the captured parameters when the segments fit the route.
func (r route) match(segments []string) ([]string, bool) {
	if len(segments) != len(r.segments) {
		return nil, false
	}
	captured := make([]string, 0, r.params)
	for idx, segment := range r.segments {
		if isParam(segment) {
			captured = append(captured, segments[idx])
			continue
		}
		if segment != segments[idx] {
			return nil, false
		}
	}
	return captured, true
}
