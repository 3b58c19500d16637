package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-builder/internal/domain"
	"resume-builder/pkg/apperror"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type ResumesRepo struct {
	pool *pgxpool.Pool
}

func NewResumesRepo(pool *pgxpool.Pool) *ResumesRepo {
	return &ResumesRepo{pool: pool}
}

// Save creates or overwrites a resume row. A zero id means create: the repo
// assigns the id and returns it on the record. Updates are unconditional
// overwrites of title, content and template_id; last write wins.
func (r *ResumesRepo) Save(ctx context.Context, rec *domain.Record) error {
	contentB, err := json.Marshal(rec.Content)
	if err != nil {
		return apperror.NewInternal("marshal resume content", err)
	}

	now := time.Now()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err = r.pool.Exec(ctx, `INSERT INTO resumes (id, user_id, title, content, template_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, content = EXCLUDED.content, template_id = EXCLUDED.template_id, updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.UserID, rec.Title, contentB, string(rec.TemplateID), rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return apperror.NewUnavailable("resume store write failed", err)
	}
	return nil
}

func (r *ResumesRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	rec := &domain.Record{}
	var contentB []byte
	var templateID string
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, title, content, template_id, created_at, updated_at FROM resumes WHERE id = $1`, id).
		Scan(&rec.ID, &rec.UserID, &rec.Title, &contentB, &templateID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("resume", id.String())
		}
		return nil, apperror.NewUnavailable("resume store read failed", err)
	}
	if err := json.Unmarshal(contentB, &rec.Content); err != nil {
		return nil, apperror.NewInternal("unmarshal resume content", err)
	}
	rec.TemplateID = domain.TemplateID(templateID)
	return rec, nil
}

// ListByUser returns the user's resumes, most recently updated first.
func (r *ResumesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Record, error) {
	query, args, err := psql.
		Select("id", "user_id", "title", "content", "template_id", "created_at", "updated_at").
		From("resumes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("build resume list query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewUnavailable("resume store read failed", err)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var rec domain.Record
		var contentB []byte
		var templateID string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &contentB, &templateID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, apperror.NewUnavailable("resume store read failed", err)
		}
		if err := json.Unmarshal(contentB, &rec.Content); err != nil {
			return nil, apperror.NewInternal("unmarshal resume content", err)
		}
		rec.TemplateID = domain.TemplateID(templateID)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewUnavailable("resume store read failed", err)
	}
	return out, nil
}

// DeleteByID removes a resume owned by the user.
func (r *ResumesRepo) DeleteByID(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperror.NewUnavailable("resume store delete failed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("resume", id.String())
	}
	return nil
}
