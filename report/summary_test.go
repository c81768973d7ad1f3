package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-console/api"
)

func TestSummarizeBooks(t *testing.T) {
	books := []api.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Quantity: 2},
		{ID: 2, Title: "Dune Messiah", Author: "Frank Herbert", Category: "Sci-Fi", Quantity: 5},
		{ID: 3, Title: "Emma", Author: "Jane Austen", Category: "Classic", Quantity: 3},
	}

	s := SummarizeBooks(books)
	assert.Equal(t, 3, s.TotalBooks)
	assert.Equal(t, 10, s.TotalQuantity)
	assert.Equal(t, 3, s.UniqueTitles)
	assert.Equal(t, 2, s.UniqueAuthors)
	assert.Equal(t, 2, s.UniqueCategories)
	assert.InDelta(t, 10.0/3.0, s.AverageQuantity, 1e-9)
	require.NotNil(t, s.MostStocked)
	require.NotNil(t, s.LeastStocked)
	assert.Equal(t, "Dune Messiah", s.MostStocked.Title)
	assert.Equal(t, "Dune", s.LeastStocked.Title)
}

func TestSummarizeBooksEmpty(t *testing.T) {
	s := SummarizeBooks(nil)
	assert.Equal(t, 0, s.TotalBooks)
	assert.Nil(t, s.MostStocked)
	assert.Nil(t, s.LeastStocked)
}

func TestSummarizeMembers(t *testing.T) {
	members := []api.Member{
		{ID: 1, Name: "Alice", OutstandingDebt: 120},
		{ID: 2, Name: "Bob", OutstandingDebt: 0},
		{ID: 3, Name: "Carol", OutstandingDebt: 30},
	}

	s := SummarizeMembers(members)
	assert.Equal(t, 3, s.TotalMembers)
	assert.Equal(t, 150.0, s.TotalOutstandingDebt)
	assert.Equal(t, 50.0, s.AverageDebt)
	assert.Equal(t, 2, s.MembersWithDebt)
	require.NotNil(t, s.HighestDebt)
	assert.Equal(t, "Alice", s.HighestDebt.Name)
	assert.Equal(t, "Bob", s.LowestDebt.Name)
}

func TestSummarizeTransactions(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	fee := 7.50
	ret := api.Timestamp{Time: now.Add(-2 * 24 * time.Hour)}

	ts := []api.Transaction{
		{IssueDate: api.Timestamp{Time: now.Add(-20 * 24 * time.Hour)}},                            // open, overdue
		{IssueDate: api.Timestamp{Time: now.Add(-3 * 24 * time.Hour)}},                             // open
		{IssueDate: api.Timestamp{Time: now.Add(-10 * 24 * time.Hour)}, ReturnDate: &ret, RentFee: &fee}, // completed
	}

	s := SummarizeTransactions(ts, now)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 7.50, s.TotalRentFee)
}
