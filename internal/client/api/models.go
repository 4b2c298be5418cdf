package api

// Form is a JSON object sent as a request body. Registration forms and
// login credentials are both free-form on the wire.
type Form map[string]any

// User is the profile returned on login. Unknown fields are ignored.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// LoginResponse is the body of a successful POST /login.
//
// AccessToken and Token are distinct fields on the wire; callers decide
// which one goes where.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	User        *User  `json:"user"`
	Message     string `json:"message,omitempty"`
}

// MessageResponse is an informational body such as the one returned by
// POST /register.
type MessageResponse struct {
	Message string `json:"message"`
}

// Book is a catalog entry.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn,omitempty"`
	PublishedYear int    `json:"published_year,omitempty"`
	Available     bool   `json:"available"`
}

// Loan is a borrowing record of the current user.
type Loan struct {
	ID         int64  `json:"id"`
	BookID     int64  `json:"book_id"`
	Book       *Book  `json:"book,omitempty"`
	BorrowedAt string `json:"borrowed_at,omitempty"`
	DueDate    string `json:"due_date,omitempty"`
	ReturnedAt string `json:"returned_at,omitempty"`
}
