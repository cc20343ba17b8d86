package stats

import (
	"context"
	"testing"
	"time"
)

func testController() *Controller {
	agg := NewAggregator(fakeTasks{}, newFakeSessions(), 25*time.Minute)
	return NewController(agg, anchorWednesday())
}

func TestSetPeriodSkipsWhenUnchanged(t *testing.T) {
	c := testController()
	ctx := context.Background()

	if _, changed := c.SetPeriod(ctx, PeriodWeek); changed {
		t.Fatal("selecting the active period must not recompute")
	}
	res, changed := c.SetPeriod(ctx, PeriodMonth)
	if !changed {
		t.Fatal("expected period change")
	}
	if res.PeriodLabel != "Sep 2026" {
		t.Fatalf("unexpected label %q", res.PeriodLabel)
	}
}

func TestNavigationShiftsByPeriodUnit(t *testing.T) {
	c := testController()
	ctx := context.Background()

	res := c.Previous(ctx)
	if res.PeriodLabel != "24-Aug-2026 ~ 30-Aug-2026" {
		t.Fatalf("unexpected previous week label %q", res.PeriodLabel)
	}
	res = c.Next(ctx)
	if res.PeriodLabel != "31-Aug-2026 ~ 06-Sep-2026" {
		t.Fatalf("expected to return to the anchor week, got %q", res.PeriodLabel)
	}

	c.SetPeriod(ctx, PeriodYear)
	res = c.Next(ctx)
	if res.PeriodLabel != "2027" {
		t.Fatalf("unexpected next year label %q", res.PeriodLabel)
	}
}
