package ordering

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/ordering-backend/internal/domain"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

type OrderRepo interface {
	Create(dbc dbctx.Context, order *types.Order) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Order, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Order, error)
	ListByBuyer(dbc dbctx.Context, buyerID uuid.UUID) ([]*types.Order, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{
		db:  db,
		log: baseLog.With("repo", "OrderRepo"),
	}
}

func (r *orderRepo) Create(dbc dbctx.Context, order *types.Order) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if order == nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).Create(order).Error
}

func (r *orderRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Order, error) {
	return r.getByID(dbc, id, false)
}

// LockByID loads the order and its items under FOR UPDATE so transition
// decisions read a stable row for the rest of the transaction.
func (r *orderRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Order, error) {
	return r.getByID(dbc, id, true)
}

func (r *orderRepo) getByID(dbc dbctx.Context, id uuid.UUID, lock bool) (*types.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	q := transaction.WithContext(dbc.Ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var order types.Order
	err := q.Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ListByBuyer(dbc dbctx.Context, buyerID uuid.UUID) ([]*types.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Order
	if buyerID == uuid.Nil {
		return out, nil
	}
	err := transaction.WithContext(dbc.Ctx).
		Preload("Items").
		Where("buyer_id = ?", buyerID).
		Order("order_date DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}
