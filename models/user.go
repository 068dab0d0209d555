package models

import "time"

// Role is the access role assigned to a user account.
type Role string

const (
	// RoleAdmin grants administrative rights over other accounts.
	RoleAdmin Role = "admin"

	// RoleEditor is the default role of a newly created account.
	RoleEditor Role = "editor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier assigned by the repository on creation.
	ID int64 `json:"id"`

	// Email is the unique account identifier used to authenticate.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// It is never serialized and never holds the plaintext.
	PasswordHash string `json:"-"`

	// Role is the access role of the account.
	Role Role `json:"role"`

	// Disabled blocks every authorized request when true, regardless of
	// the validity of the presented token.
	Disabled bool `json:"disabled"`

	// CreatedAt is set once at creation and never updated.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns the representation of the user exposed by the CRUD
// endpoints.
func (u User) Public() UserPublic {
	return UserPublic{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}

// UserPublic is the subset of [User] returned by the CRUD endpoints.
type UserPublic struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UserCreate is the payload accepted when creating a new account.
type UserCreate struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Role defaults to [RoleEditor] when empty.
	Role Role `json:"role,omitempty"`
}

// UserUpdate is a partial update of an account. Only non-nil fields are
// applied.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Disabled *bool   `json:"disabled,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.Email == nil && u.Password == nil && u.Disabled == nil
}

// UserChanges is the storage-level form of [UserUpdate]: the password has
// already been replaced by its hash.
type UserChanges struct {
	Email        *string
	PasswordHash *string
	Disabled     *bool
}

// Empty reports whether there is nothing to persist.
func (c UserChanges) Empty() bool {
	return c.Email == nil && c.PasswordHash == nil && c.Disabled == nil
}

// ListRequest bounds a listing of users.
type ListRequest struct {
	Offset uint64
	Limit  uint64
}
