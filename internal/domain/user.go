package domain

// GoogleAuthSentinel is stored in place of a bcrypt hash for accounts created
// through Google login. bcrypt comparison against the sentinel always fails,
// so password login stays closed for such accounts.
const GoogleAuthSentinel = "GOOGLE_AUTH_USER"

type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
}

// HasLocalPassword reports whether the account can log in with a password.
func (u User) HasLocalPassword() bool {
	return u.PasswordHash != "" && u.PasswordHash != GoogleAuthSentinel
}
