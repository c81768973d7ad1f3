package api

import (
	"context"
	"fmt"
)

// Member is a registered borrower. OutstandingDebt accumulates unpaid rent
// fees; the backend caps it at the debt ceiling.
type Member struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone,omitempty"`
	OutstandingDebt float64 `json:"outstanding_debt"`
}

// MembersService is the CRUD client for the member collection.
type MembersService struct {
	client *Client
}

// List fetches all members.
func (s *MembersService) List(ctx context.Context) ([]Member, error) {
	var members []Member
	if err := s.client.get(ctx, "/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Create registers a member and returns the stored record.
func (s *MembersService) Create(ctx context.Context, m Member) (*Member, error) {
	var created Member
	if err := s.client.post(ctx, "/members", m, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the member's fields and returns the stored record.
func (s *MembersService) Update(ctx context.Context, id int64, m Member) (*Member, error) {
	var updated Member
	if err := s.client.put(ctx, fmt.Sprintf("/members/%d", id), m, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the member.
func (s *MembersService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/members/%d", id))
}
