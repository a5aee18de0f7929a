package model

import "time"

type Subject struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Subscription struct {
	UserID    int64 `json:"user_id"`
	SubjectID int64 `json:"subject_id"`
}
