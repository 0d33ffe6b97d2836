// Package idgen implements the lifecycle id source: sequential REQ-NNN
// ids for requests, UUIDs for sub-entities.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

type Generator struct {
	last atomic.Uint64
}

// New seeds the request counter, normally with the highest request
// number already stored.
func New(seed uint64) *Generator {
	g := &Generator{}
	g.last.Store(seed)
	return g
}

func (g *Generator) RequestID() string {
	return fmt.Sprintf("REQ-%03d", g.last.Add(1))
}

func (g *Generator) TestCaseID() string { return "tc-" + uuid.NewString() }

func (g *Generator) CommentID() string { return "c-" + uuid.NewString() }

func (g *Generator) ReleaseID() string { return "r-" + uuid.NewString() }

func (g *Generator) NotificationID() string { return "n-" + uuid.NewString() }

func (g *Generator) AttachmentID() string { return "a-" + uuid.NewString() }
