package model

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

type CreatePostRequest struct {
	SubjectID int64  `json:"subject_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}
