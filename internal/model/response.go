package model

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type RegisterResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

type RefreshResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SubjectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Subscribed  bool   `json:"subscribed"`
}

type SubscriptionStatusResponse struct {
	Subscribed bool `json:"subscribed"`
}

type SubscriptionResponse struct {
	SubjectID   int64  `json:"subject_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UserProfileResponse struct {
	ID            int64                  `json:"id"`
	Email         string                 `json:"email"`
	Username      string                 `json:"username"`
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

type CreatePostResponse struct {
	ID int64 `json:"id"`
}

type CommentResponse struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

type PostSubjectResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PostDetailResponse struct {
	ID        int64               `json:"id"`
	Subject   PostSubjectResponse `json:"subject"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Author    string              `json:"author"`
	CreatedAt string              `json:"created_at"`
	Comments  []CommentResponse   `json:"comments"`
}

type FeedPostResponse struct {
	ID        int64  `json:"id"`
	SubjectID int64  `json:"subject_id"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}
