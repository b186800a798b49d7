package models

import "time"

type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Password    string    `json:"-"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"displayName,omitempty"`
	PhotoURL    *string   `json:"photoURL,omitempty"`
	PhoneNumber *string   `json:"phoneNumber,omitempty"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
