package outbox

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/ordering-backend/internal/domain"
	do "github.com/yungbote/ordering-backend/internal/domain/outbox"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

type IntegrationEventRepo interface {
	Create(dbc dbctx.Context, rows []*types.IntegrationEventLog) error
	ClaimPending(dbc dbctx.Context, limit int) ([]*types.IntegrationEventLog, error)
	MarkPublished(dbc dbctx.Context, id uuid.UUID) error
	MarkFailed(dbc dbctx.Context, id uuid.UUID, reason string) error
	ReclaimStale(dbc dbctx.Context, olderThan time.Duration) (int64, error)
}

type integrationEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIntegrationEventRepo(db *gorm.DB, baseLog *logger.Logger) IntegrationEventRepo {
	return &integrationEventRepo{
		db:  db,
		log: baseLog.With("repo", "IntegrationEventRepo"),
	}
}

func (r *integrationEventRepo) Create(dbc dbctx.Context, rows []*types.IntegrationEventLog) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	now := time.Now()
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.Status == "" {
			row.Status = do.StatusPending
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
	}
	return transaction.WithContext(dbc.Ctx).Create(&rows).Error
}

// ClaimPending selects a batch of pending rows with SKIP LOCKED and flips
// them to publishing in one transaction, so concurrent dispatchers never
// claim the same row.
func (r *integrationEventRepo) ClaimPending(dbc dbctx.Context, limit int) ([]*types.IntegrationEventLog, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	now := time.Now()
	var rows []*types.IntegrationEventLog
	err := transaction.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		qErr := txx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ?", do.StatusPending).
			Order("created_at ASC").
			Limit(limit).
			Find(&rows).Error
		if qErr != nil {
			return qErr
		}
		if len(rows) == 0 {
			return nil
		}
		ids := make([]uuid.UUID, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		return txx.Model(&types.IntegrationEventLog{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":     do.StatusPublishing,
				"attempts":   gorm.Expr("attempts + 1"),
				"updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.Status = do.StatusPublishing
		row.Attempts++
		row.UpdatedAt = now
	}
	return rows, nil
}

func (r *integrationEventRepo) MarkPublished(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()
	return transaction.WithContext(dbc.Ctx).
		Model(&types.IntegrationEventLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       do.StatusPublished,
			"error":        "",
			"published_at": now,
			"updated_at":   now,
		}).Error
}

func (r *integrationEventRepo) MarkFailed(dbc dbctx.Context, id uuid.UUID, reason string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.IntegrationEventLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     do.StatusFailed,
			"error":      reason,
			"updated_at": time.Now(),
		}).Error
}

// ReclaimStale flips publishing rows that never completed (a dispatcher
// died mid flight) back to pending so the loop retries them.
func (r *integrationEventRepo) ReclaimStale(dbc dbctx.Context, olderThan time.Duration) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	cutoff := time.Now().Add(-olderThan)
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.IntegrationEventLog{}).
		Where("status = ? AND updated_at < ?", do.StatusPublishing, cutoff).
		Updates(map[string]interface{}{
			"status":     do.StatusPending,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
