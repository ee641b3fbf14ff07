package user

import "time"

type User struct {
	ID        int
	Login     string
	Password  string // bcrypt hash
	CompanyID string // tenant scope; empty for administrators until one is picked
	Admin     bool
	CreatedAt time.Time
}

type BaseRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
