package domain

import "strings"

// GuestIdentity is a predefined account provisioned on its first login.
type GuestIdentity struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// GuestList is the read-only allow-list of guest identities.
type GuestList []GuestIdentity

// Match returns the guest whose email matches case-insensitively and whose
// password matches exactly.
func (l GuestList) Match(email, password string) (GuestIdentity, bool) {
	for _, g := range l {
		if strings.EqualFold(g.Email, email) && g.Password == password {
			return g, true
		}
	}
	return GuestIdentity{}, false
}
