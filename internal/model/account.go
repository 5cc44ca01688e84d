package model

import (
	"time"
)

// Account roles. The closed set mirrors the registration enum.
const (
	RoleChild  = "child"
	RoleParent = "parent"
	RoleAdmin  = "admin"
)

// Roles lists every valid account role.
var Roles = []string{RoleChild, RoleParent, RoleAdmin}

type Account struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Birthdate    time.Time `db:"birthdate"`

	// IssuedLinkageCode is set only on parent accounts: the code minors
	// must present to register under this parent.
	IssuedLinkageCode *string `db:"issued_linkage_code"`

	// RequiredLinkageCode is set only on minor accounts: the parent code
	// that was presented and validated at registration.
	RequiredLinkageCode *string `db:"required_linkage_code"`

	CreatedAt time.Time `db:"created_at"`
}

// LinkageCode returns whichever linkage code is stored on the account.
// At most one of the two columns is ever set.
func (a *Account) LinkageCode() *string {
	if a.IssuedLinkageCode != nil && *a.IssuedLinkageCode != "" {
		return a.IssuedLinkageCode
	}
	if a.RequiredLinkageCode != nil && *a.RequiredLinkageCode != "" {
		return a.RequiredLinkageCode
	}
	return nil
}

// PublicProfile is the account shape returned to clients after login.
type PublicProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (a *Account) Public() PublicProfile {
	return PublicProfile{ID: a.ID, Username: a.Username, Role: a.Role}
}
