package scheduler

import (
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/gammazero/workerpool"
	"github.com/panjf2000/ants/v2"
)

// Config describes a Scheduler to build declaratively, the way the
// teacher's core/scheduler.Config describes a worker pool: a backend
// selector plus its worker limit, both tagged for gopkg.in/yaml.v3.
type Config struct {
	// Backend selects the pool implementation: "goroutine" (default, no
	// cap), "ants", "workerpool" or "pond". Unknown values are a build-time
	// error from New, not a silent fallback.
	Backend string `yaml:"backend"`
	// MaxWorker bounds the pool's concurrency. Ignored by "goroutine",
	// which never caps concurrency by design.
	MaxWorker int `yaml:"maxWorker"`
}

// New builds the Scheduler described by c. Pool-backed schedulers own the
// pool they create; callers that need to Release/Stop it directly should
// build the pool themselves and use the matching FromXxxPool adapter
// instead.
func (c Config) New() (Scheduler, error) {
	switch c.Backend {
	case "", "goroutine":
		return goroutinePoolScheduler{}, nil
	case "ants":
		n := c.MaxWorker
		if n <= 0 {
			n = ants.DefaultAntsPoolSize
		}
		p, err := ants.NewPool(n)
		if err != nil {
			return nil, fmt.Errorf("scheduler: build ants pool: %w", err)
		}
		return FromAntsPool(p), nil
	case "workerpool":
		n := c.MaxWorker
		if n <= 0 {
			n = 1
		}
		return FromWorkerpool(workerpool.New(n)), nil
	case "pond":
		n := c.MaxWorker
		if n <= 0 {
			n = 1
		}
		return FromPondPool(pond.NewPool(n)), nil
	default:
		return nil, fmt.Errorf("scheduler: unknown backend %q", c.Backend)
	}
}
