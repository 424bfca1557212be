package entity

import "time"

// ChatExchange konsultant bilan bitta savol-javob
type ChatExchange struct {
	ID        string
	UserID    int64
	Username  string
	Question  string
	Answer    string
	Timestamp time.Time
}
