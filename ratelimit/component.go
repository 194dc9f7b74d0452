package ratelimit

import (
	"context"
	"fmt"

	"github.com/kbukum/webtoon-api/component"
)

// Component wraps a Limiter for lifecycle management. The limiter is
// usable from construction; Stop closes its janitor.
type Component struct {
	limiter *Limiter
}

// NewComponent wraps lim.
func NewComponent(lim *Limiter) *Component {
	return &Component{limiter: lim}
}

// Limiter returns the wrapped limiter.
func (c *Component) Limiter() *Limiter { return c.limiter }

func (c *Component) Name() string { return "ratelimit" }

func (c *Component) Start(_ context.Context) error { return nil }

func (c *Component) Stop(_ context.Context) error { return c.limiter.Close() }

func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{
		Name:    c.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("tracking %d origins", c.limiter.Len()),
	}
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Rate Limiter",
		Type:    "ratelimit",
		Details: fmt.Sprintf("%d req / %s per origin", c.limiter.Limit(), c.limiter.Window()),
	}
}
