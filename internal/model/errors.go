package model

import "errors"

var (
	// Auth related errors
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrDuplicateRow    = errors.New("duplicate row")

	// CRUD related errors
	ErrSubjectNotFound = errors.New("subject not found")
	ErrPostNotFound    = errors.New("post not found")
)
