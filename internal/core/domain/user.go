package domain

import "time"

// RoleDoctor is the only role the records API knows about.
const RoleDoctor = "doctor"

// User models an authenticated actor in the system.
//
// Token holds the single live session token; a new login overwrites it and
// every request presenting the previous value is rejected.
type User struct {
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	Token        string    `json:"-" bson:"token,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
