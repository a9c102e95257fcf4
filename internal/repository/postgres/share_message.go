package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/logger"
	"travana-referral-dashboard/internal/repository"
)

// check_violation
const pqCheckViolation = "23514"

type shareMessageRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewShareMessageRepository(db *sql.DB) repository.ShareMessageRepository {
	return &shareMessageRepository{db: db, now: time.Now}
}

const shareMessageColumns = `id, user_id, platform, subject, message, is_active, created_at, updated_at`

func scanShareMessage(row interface{ Scan(dest ...any) error }) (*domain.ShareMessage, error) {
	var (
		m       domain.ShareMessage
		subject sql.NullString
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.Platform, &subject, &m.Message, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Subject = subject.String
	return &m, nil
}

func (r *shareMessageRepository) ListByUser(ctx context.Context, userID string) ([]domain.ShareMessage, error) {
	query := `SELECT ` + shareMessageColumns + ` FROM share_messages WHERE user_id = $1 ORDER BY platform`
	logger.DatabaseCall("ListShareMessages", query, "user_id", userID)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.DatabaseResult("ListShareMessages", 0, err)
		return nil, err
	}
	defer rows.Close()

	msgs := []domain.ShareMessage{}
	for rows.Next() {
		m, err := scanShareMessage(rows)
		if err != nil {
			logger.DatabaseResult("ListShareMessages", 0, err)
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	if err := rows.Err(); err != nil {
		logger.DatabaseResult("ListShareMessages", 0, err)
		return nil, err
	}
	logger.DatabaseResult("ListShareMessages", int64(len(msgs)), nil)
	return msgs, nil
}

func (r *shareMessageRepository) GetByPlatform(ctx context.Context, userID string, platform domain.Platform) (*domain.ShareMessage, error) {
	query := `SELECT ` + shareMessageColumns + ` FROM share_messages WHERE user_id = $1 AND platform = $2`
	logger.DatabaseCall("GetShareMessage", query, "user_id", userID, "platform", platform)

	m, err := scanShareMessage(r.db.QueryRowContext(ctx, query, userID, string(platform)))
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("GetShareMessage", 0, nil)
		return nil, repository.ErrNotFound
	}
	if err != nil {
		logger.DatabaseResult("GetShareMessage", 0, err)
		return nil, err
	}
	logger.DatabaseResult("GetShareMessage", 1, nil)
	return m, nil
}

// Upsert inserts the message or replaces the user's existing row for the
// same platform. ID and CreatedAt are filled from the stored row.
func (r *shareMessageRepository) Upsert(ctx context.Context, msg *domain.ShareMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	now := r.now().UTC()
	msg.UpdatedAt = now

	var subject sql.NullString
	if msg.Subject != "" {
		subject = sql.NullString{String: msg.Subject, Valid: true}
	}

	query := `INSERT INTO share_messages (id, user_id, platform, subject, message, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          ON CONFLICT (user_id, platform) DO UPDATE
	          SET subject = EXCLUDED.subject, message = EXCLUDED.message, is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at
	          RETURNING id, created_at`
	logger.DatabaseCall("UpsertShareMessage", query, "user_id", msg.UserID, "platform", msg.Platform)

	err := r.db.QueryRowContext(ctx, query, msg.ID, msg.UserID, string(msg.Platform), subject, msg.Message, msg.IsActive, now).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqCheckViolation {
			err = domain.NewValidationError("platform", "Platform must be one of email, whatsapp, linkedin")
		}
		logger.DatabaseResult("UpsertShareMessage", 0, err)
		return err
	}
	logger.DatabaseResult("UpsertShareMessage", 1, nil)
	return nil
}

func (r *shareMessageRepository) SetActive(ctx context.Context, userID string, platform domain.Platform, active bool) error {
	query := `UPDATE share_messages SET is_active = $1, updated_at = $2 WHERE user_id = $3 AND platform = $4`
	logger.DatabaseCall("SetShareMessageActive", query, "user_id", userID, "platform", platform, "active", active)

	res, err := r.db.ExecContext(ctx, query, active, r.now().UTC(), userID, string(platform))
	return r.affectedOne("SetShareMessageActive", res, err)
}

func (r *shareMessageRepository) Delete(ctx context.Context, userID string, platform domain.Platform) error {
	query := `DELETE FROM share_messages WHERE user_id = $1 AND platform = $2`
	logger.DatabaseCall("DeleteShareMessage", query, "user_id", userID, "platform", platform)

	res, err := r.db.ExecContext(ctx, query, userID, string(platform))
	return r.affectedOne("DeleteShareMessage", res, err)
}

func (r *shareMessageRepository) affectedOne(operation string, res sql.Result, err error) error {
	if err != nil {
		logger.DatabaseResult(operation, 0, err)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult(operation, n, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
