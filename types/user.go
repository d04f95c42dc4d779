package types

// User is the signed-in user taken from a verified ID token.
type User struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// CreatorName returns the display name, falling back to the email.
// Nil when the user has neither.
func (u *User) CreatorName() *string {
	if u.DisplayName != "" {
		name := u.DisplayName
		return &name
	}
	if u.Email != "" {
		email := u.Email
		return &email
	}
	return nil
}
