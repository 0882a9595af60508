package friendship

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/friendgraph/friendgraph-api/internal/domain/user"
)

// memStore is an in-memory Repository and UserLookup
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*user.User
	requests []*FriendRequest
}

func newMemStore() *memStore {
	return &memStore{users: map[uuid.UUID]*user.User{}}
}

func (m *memStore) addUser(username string) *user.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &user.User{
		ID: uuid.New(), Username: username, Email: username,
		FirstName: username, IsActive: true, CreatedAt: time.Now(),
	}
	m.users[u.ID] = u
	return u
}

func (m *memStore) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *memStore) Create(ctx context.Context, req *FriendRequest) (*FriendRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.requests {
		if existing.SenderID == req.SenderID && existing.RecipientID == req.RecipientID {
			return nil, ErrAlreadySent
		}
	}
	cp := *req
	m.requests = append(m.requests, &cp)
	out := cp
	return &out, nil
}

func (m *memStore) GetByID(ctx context.Context, id uuid.UUID) (*FriendRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrRequestNotFound
}

func (m *memStore) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, updatedAt time.Time) (*FriendRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.ID == id {
			r.Status = status
			r.UpdatedAt = updatedAt
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrRequestNotFound
}

func (m *memStore) SentSince(ctx context.Context, senderID uuid.UUID, since time.Time) (int, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int
	var oldest time.Time
	for _, r := range m.requests {
		if r.SenderID != senderID || r.CreatedAt.Before(since) {
			continue
		}
		count++
		if oldest.IsZero() || r.CreatedAt.Before(oldest) {
			oldest = r.CreatedAt
		}
	}
	return count, oldest, nil
}

func (m *memStore) ListFriends(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*user.User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[uuid.UUID]bool{}
	var friends []*user.User
	for _, r := range m.requests {
		if r.Status != StatusAccepted {
			continue
		}
		var other uuid.UUID
		switch userID {
		case r.SenderID:
			other = r.RecipientID
		case r.RecipientID:
			other = r.SenderID
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			friends = append(friends, m.users[other])
		}
	}
	sort.Slice(friends, func(i, j int) bool { return friends[i].Username < friends[j].Username })
	return window(friends, limit, offset), len(friends), nil
}

func (m *memStore) ListPending(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*PendingRequest, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var pending []*PendingRequest
	for _, r := range m.requests {
		if r.RecipientID != recipientID || r.Status != StatusPending {
			continue
		}
		pending = append(pending, &PendingRequest{
			FriendRequest: *r,
			Sender:        summary(m.users[r.SenderID]),
			Recipient:     summary(m.users[r.RecipientID]),
		})
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.After(pending[j].CreatedAt) })
	return window(pending, limit, offset), len(pending), nil
}

func summary(u *user.User) UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	return items[offset:min(offset+limit, len(items))]
}

type published struct {
	userID    uuid.UUID
	eventType string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []published
}

func (n *recordingNotifier) Publish(ctx context.Context, userID uuid.UUID, eventType string, payload interface{}) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, published{userID: userID, eventType: eventType})
	return nil
}

// clock is a settable time source
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestService(store *memStore) (*Service, *clock, *recordingNotifier) {
	clk := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	notifier := &recordingNotifier{}
	svc := NewService(store, store, NewLimiter(store, 3, time.Minute), notifier)
	svc.now = clk.Now
	return svc, clk, notifier
}
