package model

// UserRole is carried in the auth provider's token claims. Users themselves
// live with the provider; only their numeric id is referenced here.
type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)
