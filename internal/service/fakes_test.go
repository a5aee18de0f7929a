package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"mdd-api/internal/model"
)

// In-memory stores mirroring the repository semantics, including the
// case-insensitive uniqueness rules and conditional session updates.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]model.User{}}
}

func (f *fakeUserStore) FindByID(_ context.Context, id int64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Username, strings.TrimSpace(username)) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) ExistsByUsername(_ context.Context, username string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID != excludeID && strings.EqualFold(u.Username, strings.TrimSpace(username)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Create(_ context.Context, email string, username string, passwordHash string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) || strings.EqualFold(u.Username, username) {
			return model.User{}, model.ErrDuplicateRow
		}
	}

	f.nextID++
	u := model.User{
		ID:           f.nextID,
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) Update(_ context.Context, u model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	for _, other := range f.users {
		if other.ID == u.ID {
			continue
		}
		if strings.EqualFold(other.Email, u.Email) || strings.EqualFold(other.Username, u.Username) {
			return model.ErrDuplicateRow
		}
	}
	f.users[u.ID] = u
	return nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[string]model.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]model.Session{}}
}

func (f *fakeSessionStore) Create(_ context.Context, userID int64, tokenHash string, expiresAt time.Time) (model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[tokenHash]; ok {
		return model.Session{}, model.ErrDuplicateRow
	}

	f.nextID++
	s := model.Session{
		ID:        f.nextID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	f.sessions[tokenHash] = s
	return s, nil
}

func (f *fakeSessionStore) FindByTokenHash(_ context.Context, tokenHash string) (model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[tokenHash]
	if !ok {
		return model.Session{}, model.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) Rotate(_ context.Context, oldHash string, newHash string, expiresAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[oldHash]
	if !ok || s.RevokedAt != nil {
		return false, nil
	}
	delete(f.sessions, oldHash)
	s.TokenHash = newHash
	s.ExpiresAt = expiresAt
	f.sessions[newHash] = s
	return true, nil
}

func (f *fakeSessionStore) Revoke(_ context.Context, tokenHash string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[tokenHash]
	if !ok || s.RevokedAt != nil {
		return nil
	}
	s.RevokedAt = &at
	f.sessions[tokenHash] = s
	return nil
}

type fakeSubjectStore struct {
	mu       sync.Mutex
	nextID   int64
	subjects map[int64]model.Subject
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{subjects: map[int64]model.Subject{}}
}

func (f *fakeSubjectStore) add(name string, description string) model.Subject {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s := model.Subject{ID: f.nextID, Name: name, Description: description, CreatedAt: time.Now().UTC()}
	f.subjects[s.ID] = s
	return s
}

func (f *fakeSubjectStore) List(_ context.Context) ([]model.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Subject, 0, len(f.subjects))
	for id := int64(1); id <= f.nextID; id++ {
		if s, ok := f.subjects[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubjectStore) FindByID(_ context.Context, id int64) (model.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subjects[id]
	if !ok {
		return model.Subject{}, model.ErrSubjectNotFound
	}
	return s, nil
}

type subscriptionKey struct {
	userID    int64
	subjectID int64
}

type fakeSubscriptionStore struct {
	mu       sync.Mutex
	subjects *fakeSubjectStore
	subs     map[subscriptionKey]struct{}
}

func newFakeSubscriptionStore(subjects *fakeSubjectStore) *fakeSubscriptionStore {
	return &fakeSubscriptionStore{subjects: subjects, subs: map[subscriptionKey]struct{}{}}
}

func (f *fakeSubscriptionStore) ListSubjectIDs(_ context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0)
	for key := range f.subs {
		if key.userID == userID {
			ids = append(ids, key.subjectID)
		}
	}
	return ids, nil
}

func (f *fakeSubscriptionStore) ListSubjects(ctx context.Context, userID int64) ([]model.Subject, error) {
	ids, _ := f.ListSubjectIDs(ctx, userID)
	out := make([]model.Subject, 0, len(ids))
	for _, id := range ids {
		if s, err := f.subjects.FindByID(ctx, id); err == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionStore) Exists(_ context.Context, userID int64, subjectID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.subs[subscriptionKey{userID, subjectID}]
	return ok, nil
}

func (f *fakeSubscriptionStore) Create(_ context.Context, userID int64, subjectID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[subscriptionKey{userID, subjectID}] = struct{}{}
	return nil
}

func (f *fakeSubscriptionStore) Delete(_ context.Context, userID int64, subjectID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs, subscriptionKey{userID, subjectID})
	return nil
}

type fakePostStore struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]model.Post
	users  *fakeUserStore
}

func newFakePostStore(users *fakeUserStore) *fakePostStore {
	return &fakePostStore{posts: map[int64]model.Post{}, users: users}
}

func (f *fakePostStore) Create(_ context.Context, subjectID int64, authorID int64, title string, content string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.posts[f.nextID] = model.Post{
		ID:        f.nextID,
		SubjectID: subjectID,
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC().Add(time.Duration(f.nextID) * time.Millisecond),
	}
	return f.nextID, nil
}

func (f *fakePostStore) FindDetail(ctx context.Context, id int64) (model.Post, error) {
	f.mu.Lock()
	p, ok := f.posts[id]
	f.mu.Unlock()
	if !ok {
		return model.Post{}, model.ErrPostNotFound
	}
	if author, err := f.users.FindByID(ctx, p.AuthorID); err == nil {
		p.AuthorUsername = author.Username
	}
	return p, nil
}

func (f *fakePostStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.posts[id]
	return ok, nil
}

func (f *fakePostStore) Feed(ctx context.Context, subjectIDs []int64, ascending bool) ([]model.Post, error) {
	wanted := make(map[int64]struct{}, len(subjectIDs))
	for _, id := range subjectIDs {
		wanted[id] = struct{}{}
	}

	f.mu.Lock()
	out := make([]model.Post, 0)
	for id := int64(1); id <= f.nextID; id++ {
		p, ok := f.posts[id]
		if !ok {
			continue
		}
		if _, match := wanted[p.SubjectID]; match {
			out = append(out, p)
		}
	}
	f.mu.Unlock()

	if !ascending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	for i := range out {
		if author, err := f.users.FindByID(ctx, out[i].AuthorID); err == nil {
			out[i].AuthorUsername = author.Username
		}
	}
	return out, nil
}

type fakeCommentStore struct {
	mu       sync.Mutex
	nextID   int64
	comments []model.Comment
	users    *fakeUserStore
}

func newFakeCommentStore(users *fakeUserStore) *fakeCommentStore {
	return &fakeCommentStore{users: users}
}

func (f *fakeCommentStore) Create(_ context.Context, postID int64, authorID int64, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.comments = append(f.comments, model.Comment{
		ID:        f.nextID,
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (f *fakeCommentStore) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	f.mu.Lock()
	out := make([]model.Comment, 0)
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	f.mu.Unlock()

	for i := range out {
		if author, err := f.users.FindByID(ctx, out[i].AuthorID); err == nil {
			out[i].AuthorUsername = author.Username
		}
	}
	return out, nil
}
