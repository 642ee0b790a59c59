package rbac

import (
	"slices"
	"smarthire-backend/models"
	"strings"

	"github.com/pkg/errors"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	i := &impl{
		routes:      map[HTTPMethod][]route{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	Instance = i
	i.initRules()
}

type impl struct {
	// per method, routes with fewer parameters first
	routes      map[HTTPMethod][]route
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	segments := splitPath(path)
	for _, r := range i.routes[HTTPMethod(strings.ToUpper(method))] {
		if _, ok := r.match(segments); ok {
			return r.handler, true
		}
	}
	return nil, false
}

func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	r, err := compileRoute(swaggerPattern)
	if err != nil {
		panic(err.Error())
	}
	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}
	r.handler = handler
	i.addRoute(r)

	// permissions map served to the frontend
	for _, role := range roles {
		if _, ok := i.permissions[role]; !ok {
			i.permissions[role] = map[models.Module][]models.Permission{}
		}
		if !slices.Contains(i.permissions[role][module], permission) {
			i.permissions[role][module] = append(i.permissions[role][module], permission)
		}
	}
	return nil
}

// addRoute replaces a rule registered for the same path or inserts the new
// one after every route with as few parameters.
func (i *impl) addRoute(r route) {
	routes := i.routes[r.method]
	for idx := range routes {
		if slices.Equal(routes[idx].segments, r.segments) {
			routes[idx] = r
			return
		}
	}
	at := len(routes)
	for idx := range routes {
		if routes[idx].params > r.params {
			at = idx
			break
		}
	}
	i.routes[r.method] = slices.Insert(routes, at, r)
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	allowMap := map[models.UserRole]bool{}
	for _, role := range accessRoles {
		allowMap[role] = true
	}
	return func(userID string, role models.UserRole, uri string) bool {
		return allowMap[role]
	}
}

// SelfOnlyFunc allows the roles only when the single path parameter of the
// pattern equals the caller id.
func SelfOnlyFunc(accessRoles []models.UserRole, swaggerPattern string) models.RbacFunc {
	r, err := compileRoute(swaggerPattern)
	if err != nil {
		panic(err.Error())
	}
	if r.params != 1 {
		panic(errors.Errorf("pattern (%v) must have exactly one parameter", swaggerPattern).Error())
	}
	byRole := AllowByRoleFunc(accessRoles)
	return func(userID string, role models.UserRole, uri string) bool {
		if !byRole(userID, role, uri) {
			return false
		}
		captured, ok := r.match(splitPath(uri))
		return ok && captured[0] == userID
	}
}

// compileRoute parses "/api/v1/users/{id} [post]".
func compileRoute(swaggerPattern string) (route, error) {
	pattern := strings.TrimSpace(swaggerPattern)
	open := strings.LastIndex(pattern, "[")
	if open == -1 || !strings.HasSuffix(pattern, "]") {
		return route{}, errors.Errorf("Method not provided for pattern (%v)", swaggerPattern)
	}
	method := HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[open+1 : len(pattern)-1])))
	if method == "" {
		return route{}, errors.Errorf("Method not provided for pattern (%v)", swaggerPattern)
	}
	r := route{
		method:   method,
		segments: splitPath(pattern[:open]),
	}
	for _, segment := range r.segments {
		if isParam(segment) {
			r.params++
		}
	}
	return r, nil
}

// splitPath drops empty segments, so duplicate and trailing slashes do not
// matter.
func splitPath(path string) []string {
	return strings.FieldsFunc(strings.TrimSpace(path), func(c rune) bool { return c == '/' })
}
