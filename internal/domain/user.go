package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	EmailAddress string    `json:"email_address"`
	PasswordHash string    `json:"-"`
	CDate        time.Time `json:"created_datetime"`
	MDate        time.Time `json:"modified_datetime"`
}

// Client is a registered API consumer that tokens are issued for.
type Client struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Token struct {
	ID       int64
	Token    string
	UserID   int64
	ClientID int64
	Expires  *time.Time
	CDate    time.Time
}
