package api

import (
	"context"
	"net/http"
	"net/url"
)

func bookPath(id string, suffix string) string {
	return "/books/" + url.PathEscape(id) + suffix
}

func (c *Client) ListBooks(ctx context.Context, token string) ([]Book, error) {
	var out []Book
	err := c.do(ctx, call{method: http.MethodGet, path: "/books", token: token, out: &out, unwrap: true})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBook(ctx context.Context, token, id string) (*Book, error) {
	var out Book
	err := c.do(ctx, call{method: http.MethodGet, path: bookPath(id, ""), token: token, out: &out, unwrap: true})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// BorrowBook borrows book id for the token's owner.
func (c *Client) BorrowBook(ctx context.Context, token, id string) (*Loan, error) {
	var out Loan
	err := c.do(ctx, call{method: http.MethodPost, path: bookPath(id, "/borrow"), token: token, out: &out, unwrap: true})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// BorrowedBooks lists the open loans of the token's owner.
func (c *Client) BorrowedBooks(ctx context.Context, token string) ([]Loan, error) {
	var out []Loan
	err := c.do(ctx, call{method: http.MethodGet, path: "/borrowed-books", token: token, out: &out, unwrap: true})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ReturnBook(ctx context.Context, token, id string) (*MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, call{method: http.MethodPost, path: bookPath(id, "/return"), token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
