package model

import "time"

type Post struct {
	ID        int64     `json:"id"`
	SubjectID int64     `json:"subject_id"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields filled by detail/feed queries.
	AuthorUsername string `json:"-"`
	SubjectName    string `json:"-"`
}

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	AuthorUsername string `json:"-"`
}
