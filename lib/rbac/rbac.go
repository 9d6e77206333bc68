package rbac

import (
	"facility-desk-backend/models"
	"slices"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(capability models.Capability, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) []models.Capability
}

var Instance Provider

func NewHandler() {
	i := &impl{
		rules: map[HTTPMethod]*methodRules{},
	}
	Instance = i
	i.initRules()
}

type impl struct {
	rules map[HTTPMethod]*methodRules
}

// Can единая проверка прав роли
func Can(role models.UserRole, capability models.Capability) bool {
	return slices.Contains(models.RolesFor(capability), role)
}

// Require ошибка Forbidden если у пользователя нет права
func Require(caller models.Caller, capability models.Capability) error {
	if !Can(caller.Role, capability) {
		return models.ErrForbidden()
	}
	return nil
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	rules, ok := i.rules[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return nil, false
	}
	normalizedPath := normalizePath(path)
	if handler, found := rules.exact[normalizedPath]; found {
		return handler, true
	}
	segments := splitPath(normalizedPath)
	for _, rule := range rules.patterns {
		if rule.match(segments) {
			return rule.handler, true
		}
	}
	return nil, false
}

func (i *impl) RegisterRule(capability models.Capability, swaggerPattern string, handler models.RbacFunc) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	if handler == nil {
		handler = AllowByCapabilityFunc(capability)
	}
	rules, ok := i.rules[method]
	if !ok {
		rules = &methodRules{exact: map[string]models.RbacFunc{}}
		i.rules[method] = rules
	}
	if !strings.Contains(path, "{") {
		rules.exact[path] = handler
		return nil
	}
	rule := patternRule{handler: handler}
	for _, seg := range splitPath(path) {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			seg = ""
		} else {
			rule.literals++
		}
		rule.segments = append(rule.segments, seg)
	}
	rules.patterns = append(rules.patterns, rule)
	sort.SliceStable(rules.patterns, func(a, b int) bool {
		return rules.patterns[a].literals > rules.patterns[b].literals
	})
	return nil
}

// GetPermissions права роли для фронта
func (i *impl) GetPermissions(role models.UserRole) []models.Capability {
	result := []models.Capability{}
	for _, capability := range models.Capabilities() {
		if Can(role, capability) {
			result = append(result, capability)
		}
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a] < result[b]
	})
	return result
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

func AllowByCapabilityFunc(capability models.Capability) models.RbacFunc {
	return func(userID uint, role models.UserRole, uri string) bool {
		return Can(role, capability)
	}
}

// парсит строку в формате "/api/v1/users [post]"
func parseSwaggerPattern(pattern string) (path string, method HTTPMethod, err error) {
	pattern = strings.TrimSpace(pattern)

	bracketStart := strings.LastIndex(pattern, "[")
	bracketEnd := strings.LastIndex(pattern, "]")

	if bracketStart == -1 || bracketEnd == -1 || bracketEnd < bracketStart {
		return "", "", errors.Errorf("Method not provided for pattern (%v)", pattern)
	}
	path = strings.TrimSpace(pattern[:bracketStart])
	method = HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[bracketStart+1 : bracketEnd])))
	return normalizePath(path), method, nil
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}
