package router

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard decides whether target may be entered. Protected routes need an
// authenticated session; the login and register views are skipped once
// the session is authenticated.
func Guard(target Route, authenticated bool) Decision {
	if target.RequiresAuth && !authenticated {
		return Decision{Redirect: PathLogin}
	}
	if authenticated && (target.Name == NameLogin || target.Name == NameRegister) {
		return Decision{Redirect: PathBooks}
	}
	return Decision{Allow: true}
}
