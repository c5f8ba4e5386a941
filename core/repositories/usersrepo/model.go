package usersrepo

// User is the managed entity. The id is assigned by the store on insert and
// is immutable afterwards; a zero id means the value has not been persisted.
type User struct {
	UserID   int64  `db:"user_id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"password"`
	FullName string `db:"full_name" json:"fullName"`
}

// Equals implements identity equality: two users are equal iff both carry an
// assigned id and those ids match. An unpersisted user (zero id) is equal to
// nothing, including another unpersisted copy of itself. Callers doing
// set-membership or deduplication must use this, not field comparison.
func (u User) Equals(o User) bool {
	return u.UserID != 0 && o.UserID != 0 && u.UserID == o.UserID
}

// CreateUser contains the fields for creating a new user. The id is assigned
// by the store.
type CreateUser struct {
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"password"`
	FullName string `db:"full_name" json:"fullName"`
}

// UpdateUser contains the replacement fields for an update. Every field
// overwrites the stored value, blank or not: this is a full-field replace,
// not a partial merge. Validation of blank fields happens in the bridge
// before the repository is called.
type UpdateUser struct {
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"password"`
	FullName string `db:"full_name" json:"fullName"`
}
