package simbridge

import (
	"github.com/grafana/sobek"

	"github.com/bnema/guestview/internal/infrastructure/cache"
)

// programCache keeps compiled scripts so repeated ExecuteScript calls with
// the same source skip compilation.
type programCache struct {
	programs *cache.LRU[string, *sobek.Program]
}

func newProgramCache(capacity int) *programCache {
	return &programCache{programs: cache.NewLRU[string, *sobek.Program](capacity)}
}

// compile returns the cached program for source, compiling it on a miss.
// Compilation errors are not cached.
func (c *programCache) compile(source string) (*sobek.Program, error) {
	return c.programs.GetOrAdd(source, func() (*sobek.Program, error) {
		return sobek.Compile("", source, false)
	})
}

func (c *programCache) len() int {
	return c.programs.Len()
}

func (c *programCache) stats() (hits, misses int) {
	s := c.programs.Stats()
	return s.Hits, s.Misses
}
