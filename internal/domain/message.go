package domain

import (
	"time"
)

// Message is a post on a company's board, written by the company or one of its workers.
type Message struct {
	ID         int64     `json:"id"`
	CompanyID  int64     `json:"companyId"`
	SenderRole Role      `json:"senderRole"`
	SenderID   int64     `json:"senderId"`
	SenderName string    `json:"senderName"`
	Body       string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}
