package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestLineSideOpposite(t *testing.T) {
	assert.Equal(t, Credit, Debit.Opposite())
	assert.Equal(t, Debit, Credit.Opposite())
}

func TestApprovalRuleMatches(t *testing.T) {
	banded := ApprovalRule{MinAmount: dec(100), MaxAmount: dec(1000)}
	assert.True(t, banded.Matches(decimal.NewFromInt(100)), "Bounds are inclusive")
	assert.True(t, banded.Matches(decimal.NewFromInt(1000)), "Bounds are inclusive")
	assert.True(t, banded.Matches(decimal.NewFromInt(500)))
	assert.False(t, banded.Matches(decimal.NewFromInt(99)))
	assert.False(t, banded.Matches(decimal.NewFromInt(1001)))

	openBelow := ApprovalRule{MaxAmount: dec(1000)}
	assert.True(t, openBelow.Matches(decimal.NewFromInt(1)))
	assert.False(t, openBelow.Matches(decimal.NewFromInt(1001)))

	openAbove := ApprovalRule{MinAmount: dec(100)}
	assert.True(t, openAbove.Matches(decimal.NewFromInt(1000000)))
	assert.False(t, openAbove.Matches(decimal.NewFromInt(50)))

	unbounded := ApprovalRule{}
	assert.True(t, unbounded.Matches(decimal.NewFromInt(0)))
}

func TestFiscalPeriodCovers(t *testing.T) {
	period := FiscalPeriod{
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, period.Covers(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Covers(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
	// Boundary days count regardless of time of day.
	assert.True(t, period.Covers(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)))
	assert.False(t, period.Covers(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Covers(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}
