package router

import "strings"

const (
	NameLogin       = "login"
	NameRegister    = "register"
	NameBooks       = "books"
	NameReturnBooks = "return-books"
	NameBorrowBooks = "borrow-books"
)

const (
	PathRoot        = "/"
	PathLogin       = "/login"
	PathRegister    = "/register"
	PathBooks       = "/books"
	PathReturnBooks = "/return-books"
	PathBorrowBooks = "/borrow-books/:id"
)

// Route is one entry of the route table.
type Route struct {
	Name         string
	Path         string
	RequiresAuth bool
	// RedirectTo makes the route an alias that is never realized.
	RedirectTo string
}

var table = []Route{
	{Path: PathRoot, RedirectTo: PathLogin},
	{Name: NameLogin, Path: PathLogin},
	{Name: NameRegister, Path: PathRegister},
	{Name: NameBooks, Path: PathBooks, RequiresAuth: true},
	{Name: NameReturnBooks, Path: PathReturnBooks, RequiresAuth: true},
	{Name: NameBorrowBooks, Path: PathBorrowBooks, RequiresAuth: true},
}

// Routes returns a copy of the route table.
func Routes() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Lookup finds a named route.
func Lookup(name string) (Route, bool) {
	for _, r := range table {
		if r.Name != "" && r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// BorrowPath builds the borrow location for a book id.
func BorrowPath(id string) string {
	return strings.Replace(PathBorrowBooks, ":id", id, 1)
}

// muxTemplate converts ":param" segments to gorilla/mux "{param}" form.
func muxTemplate(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") && len(s) > 1 {
			segs[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}
