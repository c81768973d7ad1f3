package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-console/api"
)

func loan(issued time.Time, returned *time.Time) api.Transaction {
	t := api.Transaction{IssueDate: api.Timestamp{Time: issued}}
	if returned != nil {
		t.ReturnDate = &api.Timestamp{Time: *returned}
	}
	return t
}

func TestIsOverdueBoundary(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	exact := loan(now.Add(-LoanPeriodDays*24*time.Hour), nil)
	assert.False(t, IsOverdue(&exact, now), "exactly 14 days is not overdue")

	past := loan(now.Add(-LoanPeriodDays*24*time.Hour-time.Second), nil)
	assert.True(t, IsOverdue(&past, now), "a second past 14 days is overdue")

	ret := now.Add(-time.Hour)
	returned := loan(now.Add(-30*24*time.Hour), &ret)
	assert.False(t, IsOverdue(&returned, now), "returned loans are never overdue")
}

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	twenty := loan(now.Add(-20*24*time.Hour), nil)
	assert.Equal(t, 6, DaysOverdue(&twenty, now))

	fifteen := loan(now.Add(-15*24*time.Hour), nil)
	assert.Equal(t, 1, DaysOverdue(&fifteen, now))
}

func TestRentFee(t *testing.T) {
	issued := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1.50, RentFee(issued, issued), "same-day return charges one day")
	assert.Equal(t, 1.50, RentFee(issued, issued.Add(12*time.Hour)), "partial day rounds down to the minimum")
	assert.Equal(t, 15.0, RentFee(issued, issued.Add(10*24*time.Hour)))
}

func TestOpenAndOverdueFilters(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	ret := now.Add(-24 * time.Hour)

	ts := []api.Transaction{
		loan(now.Add(-20*24*time.Hour), nil),  // open, overdue
		loan(now.Add(-5*24*time.Hour), nil),   // open, within period
		loan(now.Add(-40*24*time.Hour), &ret), // returned
	}

	assert.Len(t, Open(ts), 2)
	overdue := Overdue(ts, now)
	assert.Len(t, overdue, 1)
	assert.Equal(t, ts[0].IssueDate, overdue[0].IssueDate)
}
