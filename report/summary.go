// Package report derives in-memory summaries from currently loaded lists
// and renders them, with the full tables, into downloadable PDF documents.
package report

import (
	"time"

	"library-console/api"
	"library-console/policy"
)

// BookSummary aggregates the loaded book list.
type BookSummary struct {
	TotalBooks       int // distinct records
	TotalQuantity    int
	UniqueTitles     int
	UniqueAuthors    int
	UniqueCategories int
	AverageQuantity  float64
	MostStocked      *api.Book
	LeastStocked     *api.Book
}

// SummarizeBooks computes inventory totals. Zero books yields a zero
// summary with nil most/least.
func SummarizeBooks(books []api.Book) BookSummary {
	s := BookSummary{TotalBooks: len(books)}
	if len(books) == 0 {
		return s
	}

	titles := make(map[string]struct{})
	authors := make(map[string]struct{})
	categories := make(map[string]struct{})
	most, least := &books[0], &books[0]
	for i := range books {
		b := &books[i]
		s.TotalQuantity += b.Quantity
		titles[b.Title] = struct{}{}
		authors[b.Author] = struct{}{}
		categories[b.Category] = struct{}{}
		if b.Quantity > most.Quantity {
			most = b
		}
		if b.Quantity < least.Quantity {
			least = b
		}
	}
	s.UniqueTitles = len(titles)
	s.UniqueAuthors = len(authors)
	s.UniqueCategories = len(categories)
	s.AverageQuantity = float64(s.TotalQuantity) / float64(len(books))
	s.MostStocked = most
	s.LeastStocked = least
	return s
}

// MemberSummary aggregates the loaded member list.
type MemberSummary struct {
	TotalMembers         int
	TotalOutstandingDebt float64
	AverageDebt          float64
	MembersWithDebt      int
	HighestDebt          *api.Member
	LowestDebt           *api.Member
}

// SummarizeMembers computes debt totals across members.
func SummarizeMembers(members []api.Member) MemberSummary {
	s := MemberSummary{TotalMembers: len(members)}
	if len(members) == 0 {
		return s
	}

	highest, lowest := &members[0], &members[0]
	for i := range members {
		m := &members[i]
		s.TotalOutstandingDebt += m.OutstandingDebt
		if m.OutstandingDebt > 0 {
			s.MembersWithDebt++
		}
		if m.OutstandingDebt > highest.OutstandingDebt {
			highest = m
		}
		if m.OutstandingDebt < lowest.OutstandingDebt {
			lowest = m
		}
	}
	s.AverageDebt = s.TotalOutstandingDebt / float64(len(members))
	s.HighestDebt = highest
	s.LowestDebt = lowest
	return s
}

// TransactionSummary aggregates the loaded transaction list at an instant.
type TransactionSummary struct {
	Total        int
	Active       int
	Completed    int
	Overdue      int
	TotalRentFee float64
}

// SummarizeTransactions computes loan totals; overdue is evaluated at now.
func SummarizeTransactions(ts []api.Transaction, now time.Time) TransactionSummary {
	s := TransactionSummary{Total: len(ts)}
	for i := range ts {
		t := &ts[i]
		if t.ReturnDate == nil {
			s.Active++
		} else {
			s.Completed++
		}
		if policy.IsOverdue(t, now) {
			s.Overdue++
		}
		if t.RentFee != nil {
			s.TotalRentFee += *t.RentFee
		}
	}
	return s
}
