package domain

import (
	"errors"
	"time"
)

// topic registry constraints
const (
	MaxTopics        = 20  // hard cap on stored topics
	MaxKeywordLength = 255 // keyword length after trimming
)

// registry errors, mapped to HTTP status codes by the server
var (
	ErrTopicNotFound  = errors.New("topic not found")
	ErrDuplicateTopic = errors.New("topic already exists")
	ErrTopicLimit     = errors.New("topic limit reached")
	ErrInvalidKeyword = errors.New("keyword must be 1-255 characters")
)

// Topic is a user-defined keyword tracked across both feed sources
type Topic struct {
	ID        int64     `json:"id" db:"id"`
	Keyword   string    `json:"keyword" db:"keyword"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
