// Package memory provides map-backed repositories with the same contracts as
// the MongoDB adapters. They back the service and HTTP tests and local
// experiments without a database.
package memory

import (
	"cmp"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

var seq atomic.Uint64

// newID returns a 24 hex digit identifier shaped like a Mongo ObjectID.
func newID() string {
	return fmt.Sprintf("%024x", seq.Add(1))
}

func paginate[T any](items []T, q ports.PageQuery) []T {
	skip := int(q.Skip())
	if skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if q.Limit > 0 && skip+q.Limit < end {
		end = skip + q.Limit
	}
	return items[skip:end]
}

func order(c int, desc bool) int {
	if desc {
		return -c
	}
	return c
}

func compareTime(a, b time.Time) int { return a.Compare(b) }

func compareString(a, b string) int { return cmp.Compare(a, b) }

var (
	_ ports.UserRepository    = (*UserRepository)(nil)
	_ ports.ProjectRepository = (*ProjectRepository)(nil)
	_ ports.GalleryRepository = (*GalleryRepository)(nil)
)
