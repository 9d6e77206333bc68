package rbac

import (
	"facility-desk-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

type methodRules struct {
	exact    map[string]models.RbacFunc
	patterns []patternRule // сначала с большим числом постоянных сегментов
}

// patternRule путь с параметрами, пустой сегмент соответствует любому значению
type patternRule struct {
	segments []string
	literals int
	handler  models.RbacFunc
}

func (p patternRule) match(segments []string) bool {
	if len(segments) != len(p.segments) {
		return false
	}
	for idx, seg := range p.segments {
		if seg != "" && seg != segments[idx] {
			return false
		}
	}
	return true
}
