package handler_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"mdd-api/internal/model"
)

// memStores is a single-mutex in-memory backend implementing every store
// interface the services consume, enough to run the router end to end.
type memStores struct {
	mu            sync.Mutex
	nextID        int64
	users         map[int64]model.User
	sessions      map[string]model.Session
	subjects      map[int64]model.Subject
	subscriptions map[[2]int64]struct{}
	posts         map[int64]model.Post
	comments      []model.Comment
}

func newMemStores() *memStores {
	return &memStores{
		users:         map[int64]model.User{},
		sessions:      map[string]model.Session{},
		subjects:      map[int64]model.Subject{},
		subscriptions: map[[2]int64]struct{}{},
		posts:         map[int64]model.Post{},
	}
}

func (m *memStores) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStores) addSubject(name string, description string) model.Subject {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := model.Subject{ID: m.id(), Name: name, Description: description, CreatedAt: time.Now().UTC()}
	m.subjects[s.ID] = s
	return s
}

func (m *memStores) FindByID(_ context.Context, id int64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (m *memStores) FindByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *memStores) FindByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, strings.TrimSpace(username)) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *memStores) ExistsByID(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok, nil
}

func (m *memStores) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStores) ExistsByUsername(_ context.Context, username string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID != excludeID && strings.EqualFold(u.Username, strings.TrimSpace(username)) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStores) Create(_ context.Context, email string, username string, passwordHash string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) || strings.EqualFold(u.Username, username) {
			return model.User{}, model.ErrDuplicateRow
		}
	}
	u := model.User{ID: m.id(), Email: email, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStores) Update(_ context.Context, u model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	m.users[u.ID] = u
	return nil
}

// sessionStore narrows memStores so its Create does not collide with the
// user Create method.
type sessionStore struct{ *memStores }

func (s sessionStore) Create(_ context.Context, userID int64, tokenHash string, expiresAt time.Time) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[tokenHash]; ok {
		return model.Session{}, model.ErrDuplicateRow
	}
	sess := model.Session{ID: s.id(), UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt, CreatedAt: time.Now().UTC()}
	s.sessions[tokenHash] = sess
	return sess, nil
}

func (s sessionStore) FindByTokenHash(_ context.Context, tokenHash string) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tokenHash]
	if !ok {
		return model.Session{}, model.ErrSessionNotFound
	}
	return sess, nil
}

func (s sessionStore) Rotate(_ context.Context, oldHash string, newHash string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[oldHash]
	if !ok || sess.RevokedAt != nil {
		return false, nil
	}
	delete(s.sessions, oldHash)
	sess.TokenHash = newHash
	sess.ExpiresAt = expiresAt
	s.sessions[newHash] = sess
	return true, nil
}

func (s sessionStore) Revoke(_ context.Context, tokenHash string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tokenHash]
	if !ok || sess.RevokedAt != nil {
		return nil
	}
	sess.RevokedAt = &at
	s.sessions[tokenHash] = sess
	return nil
}

type subjectStore struct{ *memStores }

func (s subjectStore) List(_ context.Context) ([]model.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Subject, 0, len(s.subjects))
	for id := int64(1); id <= s.nextID; id++ {
		if subject, ok := s.subjects[id]; ok {
			out = append(out, subject)
		}
	}
	return out, nil
}

func (s subjectStore) FindByID(_ context.Context, id int64) (model.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subject, ok := s.subjects[id]
	if !ok {
		return model.Subject{}, model.ErrSubjectNotFound
	}
	return subject, nil
}

type subscriptionStore struct{ *memStores }

func (s subscriptionStore) ListSubjectIDs(_ context.Context, userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0)
	for key := range s.subscriptions {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

func (s subscriptionStore) ListSubjects(ctx context.Context, userID int64) ([]model.Subject, error) {
	ids, _ := s.ListSubjectIDs(ctx, userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Subject, 0, len(ids))
	for _, id := range ids {
		if subject, ok := s.subjects[id]; ok {
			out = append(out, subject)
		}
	}
	return out, nil
}

func (s subscriptionStore) Exists(_ context.Context, userID int64, subjectID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.subscriptions[[2]int64{userID, subjectID}]
	return ok, nil
}

func (s subscriptionStore) Create(_ context.Context, userID int64, subjectID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions[[2]int64{userID, subjectID}] = struct{}{}
	return nil
}

func (s subscriptionStore) Delete(_ context.Context, userID int64, subjectID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscriptions, [2]int64{userID, subjectID})
	return nil
}

type postStore struct{ *memStores }

func (s postStore) Create(_ context.Context, subjectID int64, authorID int64, title string, content string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := model.Post{ID: s.id(), SubjectID: subjectID, AuthorID: authorID, Title: title, Content: content, CreatedAt: time.Now().UTC()}
	s.posts[p.ID] = p
	return p.ID, nil
}

func (s postStore) FindDetail(_ context.Context, id int64) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return model.Post{}, model.ErrPostNotFound
	}
	if author, found := s.users[p.AuthorID]; found {
		p.AuthorUsername = author.Username
	}
	if subject, found := s.subjects[p.SubjectID]; found {
		p.SubjectName = subject.Name
	}
	return p, nil
}

func (s postStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.posts[id]
	return ok, nil
}

func (s postStore) Feed(_ context.Context, subjectIDs []int64, ascending bool) ([]model.Post, error) {
	wanted := map[int64]struct{}{}
	for _, id := range subjectIDs {
		wanted[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Post, 0)
	for id := int64(1); id <= s.nextID; id++ {
		p, ok := s.posts[id]
		if !ok {
			continue
		}
		if _, match := wanted[p.SubjectID]; !match {
			continue
		}
		if author, found := s.users[p.AuthorID]; found {
			p.AuthorUsername = author.Username
		}
		out = append(out, p)
	}
	if !ascending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

type commentStore struct{ *memStores }

func (s commentStore) Create(_ context.Context, postID int64, authorID int64, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, model.Comment{ID: s.id(), PostID: postID, AuthorID: authorID, Content: content, CreatedAt: time.Now().UTC()})
	return nil
}

func (s commentStore) ListByPost(_ context.Context, postID int64) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Comment, 0)
	for _, c := range s.comments {
		if c.PostID != postID {
			continue
		}
		if author, found := s.users[c.AuthorID]; found {
			c.AuthorUsername = author.Username
		}
		out = append(out, c)
	}
	return out, nil
}
