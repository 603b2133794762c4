package model

import "time"

// Role is the account role stored on the identity record.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleStudent Role = "Student"
	RoleSociety Role = "Society"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent || r == RoleSociety
}

// User is the identity record: credentials plus role. The role is
// immutable after creation.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"` // never expose the password hash
	Role      Role      `json:"role"`
	CreatedOn time.Time `json:"created_on"`
}

// Student is the role-specific profile for a Student identity. UserID is
// an exclusive back-reference to exactly one User.
type Student struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RollNo     string `json:"rollno"`
	Department string `json:"department"`
	UserID     string `json:"user_id"`
}

// Society is the role-specific profile for a Society identity.
type Society struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

// StudentAccount pairs a student profile with the email of its identity,
// the projection the admin screens and dashboards work with.
type StudentAccount struct {
	Student
	Email string `json:"email"`
}

// SocietyAccount pairs a society profile with the email of its identity.
type SocietyAccount struct {
	Society
	Email string `json:"email"`
}
