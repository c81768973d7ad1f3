package api

import (
	"context"
	"fmt"
	"net/url"
)

// Book is a title in the catalog with its stocked quantity.
type Book struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
}

// BookFilter narrows a listing server-side. Field is "title" or "author";
// the backend performs the match and returns the filtered set.
type BookFilter struct {
	Field string
	Value string
}

// BooksService is the CRUD client for the book collection.
type BooksService struct {
	client *Client
}

// List fetches books, optionally filtered server-side. No caching: every
// call hits the backend.
func (s *BooksService) List(ctx context.Context, filter *BookFilter) ([]Book, error) {
	var query url.Values
	if filter != nil && filter.Value != "" {
		query = url.Values{filter.Field: []string{filter.Value}}
	}
	var books []Book
	if err := s.client.get(ctx, "/books", query, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Create adds a book and returns the stored record with its assigned ID.
func (s *BooksService) Create(ctx context.Context, b Book) (*Book, error) {
	var created Book
	if err := s.client.post(ctx, "/books", b, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the book's fields and returns the stored record.
func (s *BooksService) Update(ctx context.Context, id int64, b Book) (*Book, error) {
	var updated Book
	if err := s.client.put(ctx, fmt.Sprintf("/books/%d", id), b, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the book.
func (s *BooksService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/books/%d", id))
}
