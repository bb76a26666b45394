package model

// UserStatus is the activation state of a staff record.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User represents a system operator or staff member.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name" validate:"required"`
	Email      string     `json:"email" validate:"omitempty,email"`
	Role       string     `json:"role"`
	Department string     `json:"department"`
	Phone      string     `json:"phone"`
	Status     UserStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	CreatedAt  string     `json:"createdAt" validate:"omitempty,datetime=2006-01-02"`
}

// EntityID returns the user id.
func (u User) EntityID() string {
	return u.ID
}

// WithEntityID returns a copy of the user carrying id.
func (u User) WithEntityID(id string) User {
	u.ID = id
	return u
}
