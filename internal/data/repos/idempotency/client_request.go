package idempotency

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/ordering-backend/internal/domain"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

type ClientRequestRepo interface {
	Create(dbc dbctx.Context, req *types.ClientRequest) error
	Exists(dbc dbctx.Context, id uuid.UUID) (bool, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ClientRequest, error)
	DeleteOlderThan(dbc dbctx.Context, cutoff time.Time) (int64, error)
}

type clientRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRequestRepo(db *gorm.DB, baseLog *logger.Logger) ClientRequestRepo {
	return &clientRequestRepo{
		db:  db,
		log: baseLog.With("repo", "ClientRequestRepo"),
	}
}

// Create inserts the dedup row. A duplicate primary key surfaces as a
// unique violation, which callers treat as "already processed".
func (r *clientRequestRepo) Create(dbc dbctx.Context, req *types.ClientRequest) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if req == nil {
		return nil
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	return transaction.WithContext(dbc.Ctx).Create(req).Error
}

func (r *clientRequestRepo) Exists(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	var count int64
	err := transaction.WithContext(dbc.Ctx).
		Model(&types.ClientRequest{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *clientRequestRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ClientRequest, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var req types.ClientRequest
	err := transaction.WithContext(dbc.Ctx).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *clientRequestRepo) DeleteOlderThan(dbc dbctx.Context, cutoff time.Time) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("created_at < ?", cutoff).
		Delete(&types.ClientRequest{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
