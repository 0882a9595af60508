package friendship

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/friendgraph/friendgraph-api/internal/domain/user"
)

const (
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
)

const requestColumns = `id, sender_id, recipient_id, status, created_at, updated_at`

// Repository defines friend request data access
type Repository interface {
	// Create inserts req unless the ordered pair already has a request, in which case it returns ErrAlreadySent
	Create(ctx context.Context, req *FriendRequest) (*FriendRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FriendRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, updatedAt time.Time) (*FriendRequest, error)
	// SentSince counts requests created by sender at or after since, and returns the oldest of them
	SentSince(ctx context.Context, senderID uuid.UUID, since time.Time) (count int, oldest time.Time, err error)
	ListFriends(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*user.User, int, error)
	ListPending(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*PendingRequest, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates friend request repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *FriendRequest) (*FriendRequest, error) {
	query := `
		INSERT INTO friend_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (sender_id, recipient_id) DO NOTHING
		RETURNING ` + requestColumns

	var created FriendRequest
	err := r.db.GetContext(ctx, &created, query,
		req.ID, req.SenderID, req.RecipientID, req.Status, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlreadySent
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch string(pqErr.Code) {
			case sqlStateCheckViolation:
				return nil, ErrSelfRequest
			case sqlStateForeignKeyViolation:
				return nil, ErrRecipientNotFound
			}
		}
		return nil, fmt.Errorf("friend request create: %w", err)
	}
	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*FriendRequest, error) {
	var req FriendRequest
	err := r.db.GetContext(ctx, &req, `SELECT `+requestColumns+` FROM friend_requests WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("friend request get: %w", err)
	}
	return &req, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, updatedAt time.Time) (*FriendRequest, error) {
	query := `UPDATE friend_requests SET status = $2, updated_at = $3 WHERE id = $1 RETURNING ` + requestColumns

	var req FriendRequest
	if err := r.db.GetContext(ctx, &req, query, id, status, updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("friend request update status: %w", err)
	}
	return &req, nil
}

func (r *repository) SentSince(ctx context.Context, senderID uuid.UUID, since time.Time) (int, time.Time, error) {
	query := `SELECT COUNT(*), MIN(created_at) FROM friend_requests WHERE sender_id = $1 AND created_at >= $2`

	var count int
	var oldest sql.NullTime
	if err := r.db.QueryRowxContext(ctx, query, senderID, since).Scan(&count, &oldest); err != nil {
		return 0, time.Time{}, fmt.Errorf("friend request count window: %w", err)
	}
	return count, oldest.Time, nil
}

const friendsWhere = `
	WHERE EXISTS (
		SELECT 1 FROM friend_requests fr
		WHERE fr.status = 'accepted'
		  AND ((fr.sender_id = $1 AND fr.recipient_id = u.id)
		    OR (fr.recipient_id = $1 AND fr.sender_id = u.id))
	)`

func (r *repository) ListFriends(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*user.User, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users u`+friendsWhere, userID); err != nil {
		return nil, 0, fmt.Errorf("friends count: %w", err)
	}

	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name, u.is_active, u.created_at, u.updated_at
		FROM users u` + friendsWhere + `
		ORDER BY u.username ASC, u.id ASC
		LIMIT $2 OFFSET $3`

	friends := []*user.User{}
	if err := r.db.SelectContext(ctx, &friends, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("friends list: %w", err)
	}
	return friends, total, nil
}

type pendingRow struct {
	FriendRequest
	SenderUsername     string `db:"sender_username"`
	SenderEmail        string `db:"sender_email"`
	SenderFirstName    string `db:"sender_first_name"`
	SenderLastName     string `db:"sender_last_name"`
	RecipientUsername  string `db:"recipient_username"`
	RecipientEmail     string `db:"recipient_email"`
	RecipientFirstName string `db:"recipient_first_name"`
	RecipientLastName  string `db:"recipient_last_name"`
}

func (row *pendingRow) toPending() *PendingRequest {
	return &PendingRequest{
		FriendRequest: row.FriendRequest,
		Sender: UserSummary{
			ID:        row.SenderID,
			Username:  row.SenderUsername,
			Email:     row.SenderEmail,
			FirstName: row.SenderFirstName,
			LastName:  row.SenderLastName,
		},
		Recipient: UserSummary{
			ID:        row.RecipientID,
			Username:  row.RecipientUsername,
			Email:     row.RecipientEmail,
			FirstName: row.RecipientFirstName,
			LastName:  row.RecipientLastName,
		},
	}
}

func (r *repository) ListPending(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*PendingRequest, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM friend_requests WHERE recipient_id = $1 AND status = 'pending'`
	if err := r.db.GetContext(ctx, &total, countQuery, recipientID); err != nil {
		return nil, 0, fmt.Errorf("pending count: %w", err)
	}

	query := `
		SELECT fr.id, fr.sender_id, fr.recipient_id, fr.status, fr.created_at, fr.updated_at,
		       s.username AS sender_username, s.email AS sender_email,
		       s.first_name AS sender_first_name, s.last_name AS sender_last_name,
		       rc.username AS recipient_username, rc.email AS recipient_email,
		       rc.first_name AS recipient_first_name, rc.last_name AS recipient_last_name
		FROM friend_requests fr
		JOIN users s ON s.id = fr.sender_id
		JOIN users rc ON rc.id = fr.recipient_id
		WHERE fr.recipient_id = $1 AND fr.status = 'pending'
		ORDER BY fr.created_at DESC, fr.id DESC
		LIMIT $2 OFFSET $3`

	var rows []pendingRow
	if err := r.db.SelectContext(ctx, &rows, query, recipientID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("pending list: %w", err)
	}

	pending := make([]*PendingRequest, len(rows))
	for i := range rows {
		pending[i] = rows[i].toPending()
	}
	return pending, total, nil
}
