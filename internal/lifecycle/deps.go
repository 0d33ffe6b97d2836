package lifecycle

import (
	"time"

	"request-tracker/internal/domain"
)

// Clock is the engine's timestamp source, injectable for tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// IDGenerator hands out unique ids for requests and their sub-entities.
type IDGenerator interface {
	RequestID() string
	TestCaseID() string
	CommentID() string
	ReleaseID() string
}

// Directory resolves user ids against the seeded user catalog.
type Directory interface {
	User(id string) (domain.User, bool)
}

// Catalog resolves a system name to its pre-defined test scenarios.
type Catalog interface {
	ScenariosFor(system string) []domain.SystemScenario
}

type StaticDirectory map[string]domain.User

func NewStaticDirectory(users []domain.User) StaticDirectory {
	d := make(StaticDirectory, len(users))
	for _, u := range users {
		d[u.ID] = u
	}
	return d
}

func (d StaticDirectory) User(id string) (domain.User, bool) {
	u, ok := d[id]
	return u, ok
}

type StaticCatalog []domain.SystemScenario

func NewStaticCatalog(scenarios []domain.SystemScenario) StaticCatalog {
	return StaticCatalog(scenarios)
}

func (c StaticCatalog) ScenariosFor(system string) []domain.SystemScenario {
	var out []domain.SystemScenario
	for _, s := range c {
		if s.SystemName == system {
			out = append(out, s)
		}
	}
	return out
}
