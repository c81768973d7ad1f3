package api

import (
	"context"
	"fmt"
	"time"
)

// Transaction records one loan. ReturnDate is nil while the loan is open;
// RentFee is set by the backend when the return is processed.
type Transaction struct {
	ID         int64      `json:"id"`
	Book       *Book      `json:"book"`
	Member     *Member    `json:"member"`
	IssueDate  Timestamp  `json:"issue_date"`
	ReturnDate *Timestamp `json:"return_date,omitempty"`
	RentFee    *float64   `json:"rent_fee,omitempty"`
}

// TransactionsService is the client for loan records. Issue creates an
// open loan; Return completes it. The backend rejects a return that would
// push the member's outstanding debt over the ceiling.
type TransactionsService struct {
	client *Client
}

// List fetches all transactions.
func (s *TransactionsService) List(ctx context.Context) ([]Transaction, error) {
	var ts []Transaction
	if err := s.client.get(ctx, "/transactions", nil, &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// Issue opens a loan of the book to the member.
func (s *TransactionsService) Issue(ctx context.Context, bookID, memberID int64) (*Transaction, error) {
	body := map[string]int64{"book_id": bookID, "member_id": memberID}
	var created Transaction
	if err := s.client.post(ctx, "/transactions", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Return completes the loan as of returnDate (date precision). The fee and
// debt bookkeeping happen server-side.
func (s *TransactionsService) Return(ctx context.Context, id int64, returnDate time.Time) (*Transaction, error) {
	body := map[string]string{"return_date": returnDate.Format("2006-01-02")}
	var updated Transaction
	if err := s.client.put(ctx, fmt.Sprintf("/transactions/%d", id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
