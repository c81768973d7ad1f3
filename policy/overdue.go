// Package policy holds the circulation business rules that the console
// evaluates locally: the overdue window and the rental fee formula. The
// backend remains authoritative for everything it stores; these functions
// exist so lists and reports can be derived from fresh transaction data
// without another round trip.
package policy

import (
	"time"

	"library-console/api"
)

// Fixed business rules. These mirror the backend and are deliberately not
// configurable.
const (
	// LoanPeriodDays is the grace period before an open loan is overdue.
	LoanPeriodDays = 14

	// DailyRentalFee is charged per day rented, minimum one day.
	DailyRentalFee = 1.50

	// MaxOutstandingDebt is the ceiling the backend enforces on returns.
	MaxOutstandingDebt = 500.0
)

// IsOverdue reports whether the transaction is an open loan older than the
// loan period. Exactly LoanPeriodDays is not overdue; a second past it is.
func IsOverdue(t *api.Transaction, now time.Time) bool {
	if t.ReturnDate != nil {
		return false
	}
	return now.Sub(t.IssueDate.Time) > LoanPeriodDays*24*time.Hour
}

// DaysOverdue returns the number of whole days past the loan period.
// Only meaningful when IsOverdue holds; callers filter first.
func DaysOverdue(t *api.Transaction, now time.Time) int {
	days := int(now.Sub(t.IssueDate.Time).Hours() / 24)
	return days - LoanPeriodDays
}

// RentFee computes the fee the backend will charge for a loan returned at
// ret: DailyRentalFee per whole day rented, with a one-day minimum.
func RentFee(issued, ret time.Time) float64 {
	days := int(ret.Sub(issued).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return DailyRentalFee * float64(days)
}

// Open returns the transactions with no return date.
func Open(ts []api.Transaction) []api.Transaction {
	var open []api.Transaction
	for _, t := range ts {
		if t.ReturnDate == nil {
			open = append(open, t)
		}
	}
	return open
}

// Overdue returns the open transactions past the loan period at now.
func Overdue(ts []api.Transaction, now time.Time) []api.Transaction {
	var out []api.Transaction
	for i := range ts {
		if IsOverdue(&ts[i], now) {
			out = append(out, ts[i])
		}
	}
	return out
}
