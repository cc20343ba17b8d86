package stats

import (
	"context"
	"time"
)

// Controller owns the period and anchor the reports are scoped to and
// navigates them forward and backward one period unit at a time.
type Controller struct {
	agg    *Aggregator
	period Period
	anchor time.Time
}

func NewController(agg *Aggregator, now time.Time) *Controller {
	return &Controller{agg: agg, period: PeriodWeek, anchor: now}
}

func (c *Controller) Period() Period    { return c.period }
func (c *Controller) Anchor() time.Time { return c.anchor }

// Refresh recomputes the report for the current period and anchor.
func (c *Controller) Refresh(ctx context.Context) Result {
	return c.agg.Refresh(ctx, c.period, c.anchor)
}

// SetPeriod switches the report granularity. Selecting the already
// active period changes nothing and reports false.
func (c *Controller) SetPeriod(ctx context.Context, p Period) (Result, bool) {
	if p == c.period {
		return Result{}, false
	}
	c.period = p
	return c.Refresh(ctx), true
}

// Previous shifts the anchor one period back and recomputes.
func (c *Controller) Previous(ctx context.Context) Result {
	c.shift(-1)
	return c.Refresh(ctx)
}

// Next shifts the anchor one period forward and recomputes.
func (c *Controller) Next(ctx context.Context) Result {
	c.shift(1)
	return c.Refresh(ctx)
}

func (c *Controller) shift(direction int) {
	switch c.period {
	case PeriodMonth:
		c.anchor = c.anchor.AddDate(0, direction, 0)
	case PeriodYear:
		c.anchor = c.anchor.AddDate(direction, 0, 0)
	default:
		c.anchor = c.anchor.AddDate(0, 0, 7*direction)
	}
}
