package entity

import (
	"time"
)

// Roles carried by users. Admins may delete content they do not own.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password.
// Department, Faculty and YearOfStudy are free-form profile attributes that
// double as audience filters for scoped discussion fan-out.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Department  string    `json:"department,omitempty"`
	Faculty     string    `json:"faculty,omitempty"`
	YearOfStudy string    `json:"year_of_study,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	Role        string    `json:"role"`
	Reputation  int       `json:"reputation"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Profile is the public projection of a user plus contribution counters.
type Profile struct {
	User
	ResourcesCount   int `json:"resources_count"`
	DiscussionsCount int `json:"discussions_count"`
	CommentsCount    int `json:"comments_count"`
}
