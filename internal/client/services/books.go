package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/api"
	"github.com/dmitrijs2005/bookshelf/internal/common"
)

// CatalogAPI is the part of the library API used by BookService.
type CatalogAPI interface {
	ListBooks(ctx context.Context, token string) ([]api.Book, error)
	GetBook(ctx context.Context, token, id string) (*api.Book, error)
	BorrowBook(ctx context.Context, token, id string) (*api.Loan, error)
	BorrowedBooks(ctx context.Context, token string) ([]api.Loan, error)
	ReturnBook(ctx context.Context, token, id string) (*api.MessageResponse, error)
}

// TokenSource supplies the current session token.
type TokenSource interface {
	Token() string
}

// BookService defines catalog operations for the CLI.
//
// Every method needs a session token and fails with
// common.ErrNotAuthenticated, without touching the network, when there is
// none. Book ids must be non-empty.
type BookService interface {
	List(ctx context.Context) ([]api.Book, error)
	Get(ctx context.Context, id string) (*api.Book, error)
	Borrow(ctx context.Context, id string) (*api.Loan, error)
	Borrowed(ctx context.Context) ([]api.Loan, error)
	Return(ctx context.Context, id string) (string, error)
}

type bookService struct {
	api    CatalogAPI
	tokens TokenSource
}

func NewBookService(c CatalogAPI, tokens TokenSource) BookService {
	return &bookService{api: c, tokens: tokens}
}

func (s *bookService) token() (string, error) {
	t := s.tokens.Token()
	if t == "" {
		return "", common.ErrNotAuthenticated
	}
	return t, nil
}

func (s *bookService) tokenAndID(id string) (string, string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "", fmt.Errorf("book id: %w", common.ErrEmptyInput)
	}
	t, err := s.token()
	return t, id, err
}

func (s *bookService) List(ctx context.Context) ([]api.Book, error) {
	t, err := s.token()
	if err != nil {
		return nil, err
	}
	books, err := s.api.ListBooks(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *bookService) Get(ctx context.Context, id string) (*api.Book, error) {
	t, id, err := s.tokenAndID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.api.GetBook(ctx, t, id)
	if err != nil {
		return nil, fmt.Errorf("get book %s: %w", id, err)
	}
	return b, nil
}

func (s *bookService) Borrow(ctx context.Context, id string) (*api.Loan, error) {
	t, id, err := s.tokenAndID(id)
	if err != nil {
		return nil, err
	}
	l, err := s.api.BorrowBook(ctx, t, id)
	if err != nil {
		return nil, fmt.Errorf("borrow book %s: %w", id, err)
	}
	return l, nil
}

func (s *bookService) Borrowed(ctx context.Context) ([]api.Loan, error) {
	t, err := s.token()
	if err != nil {
		return nil, err
	}
	loans, err := s.api.BorrowedBooks(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("borrowed books: %w", err)
	}
	return loans, nil
}

// Return gives book id back and returns the server's message.
func (s *bookService) Return(ctx context.Context, id string) (string, error) {
	t, id, err := s.tokenAndID(id)
	if err != nil {
		return "", err
	}
	resp, err := s.api.ReturnBook(ctx, t, id)
	if err != nil {
		return "", fmt.Errorf("return book %s: %w", id, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Message, nil
}
