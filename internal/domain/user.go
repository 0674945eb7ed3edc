package domain

// UserAccount is a rider profile. The ID is the identity provider's
// subject (Firebase Auth uid); accounts are created at signup and never
// deleted by normal operation.
type UserAccount struct {
	ID             string  `json:"id" firestore:"-"`
	FirstName      string  `json:"firstName" firestore:"firstName"`
	LastName       string  `json:"lastName" firestore:"lastName"`
	Email          string  `json:"email" firestore:"email"`
	PasswordHash   string  `json:"-" firestore:"passwordHash,omitempty"`
	Kudu           int64   `json:"kudu" firestore:"kudu"`
	ActiveItem     *string `json:"activeItem,omitempty" firestore:"activeItem"`
	ActiveLocation *string `json:"activeLocation,omitempty" firestore:"activeLocation"`
	CreatedOn      string  `json:"createdOn,omitempty" firestore:"createdOn,omitempty"`
	UpdatedOn      string  `json:"updatedOn,omitempty" firestore:"updatedOn,omitempty"`
}

// HasActiveRental reports whether the account currently holds a rental
// assignment. ActiveItem and ActiveLocation are set and cleared together.
func (u *UserAccount) HasActiveRental() bool {
	return u.ActiveItem != nil
}
