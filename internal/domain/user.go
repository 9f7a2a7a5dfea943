package domain

// User identifies the logged-in account as reported by the backend.
type User struct {
	ID    int
	Name  string
	Email string
}
