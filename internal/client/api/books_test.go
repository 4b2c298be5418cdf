package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooks_AcceptsBareAndWrappedBodies(t *testing.T) {
	bodies := map[string]string{
		"bare":    `[{"id":1,"title":"Dune","author":"Herbert","available":true},{"id":2,"title":"Emma","author":"Austen"}]`,
		"wrapped": `{"data":[{"id":1,"title":"Dune","author":"Herbert","available":true},{"id":2,"title":"Emma","author":"Austen"}],"meta":{"total":2}}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			var auth string
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/books", r.URL.Path)
				auth = r.Header.Get(common.AuthorizationHeaderName)
				writeJSON(w, http.StatusOK, body)
			})

			books, err := c.ListBooks(context.Background(), "tok")
			require.NoError(t, err)
			assert.Equal(t, "Bearer tok", auth)
			require.Len(t, books, 2)
			assert.Equal(t, Book{ID: 1, Title: "Dune", Author: "Herbert", Available: true}, books[0])
			assert.False(t, books[1].Available)
		})
	}
}

func TestGetBook_EscapesID(t *testing.T) {
	var rawPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, `{"data":{"id":7,"title":"Ulysses"}}`)
	})

	b, err := c.GetBook(context.Background(), "tok", "7/../x")
	require.NoError(t, err)
	assert.Equal(t, "/api/books/7%2F..%2Fx", rawPath)
	assert.Equal(t, int64(7), b.ID)
}

func TestBorrowBook(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/books/3/borrow", r.URL.Path)
		writeJSON(w, http.StatusCreated, `{"data":{"id":10,"book_id":3,"due_date":"2026-11-01","book":{"id":3,"title":"Dune"}}}`)
	})

	loan, err := c.BorrowBook(context.Background(), "tok", "3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), loan.BookID)
	assert.Equal(t, "2026-11-01", loan.DueDate)
	require.NotNil(t, loan.Book)
	assert.Equal(t, "Dune", loan.Book.Title)
}

func TestBorrowBook_Unavailable(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, `{"message":"Book is not available"}`)
	})

	_, err := c.BorrowBook(context.Background(), "tok", "3")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Book is not available", se.Message)
}

func TestBorrowedBooksAndReturn(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/borrowed-books":
			writeJSON(w, http.StatusOK, `[{"id":10,"book_id":3,"book":{"id":3,"title":"Dune"}}]`)
		case "/api/books/3/return":
			writeJSON(w, http.StatusOK, `{"message":"Book returned"}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	loans, err := c.BorrowedBooks(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, int64(10), loans[0].ID)

	msg, err := c.ReturnBook(ctx, "tok", "3")
	require.NoError(t, err)
	assert.Equal(t, "Book returned", msg.Message)

	_, err = c.ReturnBook(ctx, "tok", "4")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}
