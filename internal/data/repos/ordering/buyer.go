package ordering

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/ordering-backend/internal/domain"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

type BuyerRepo interface {
	Create(dbc dbctx.Context, buyer *types.Buyer) error
	GetByIdentity(dbc dbctx.Context, identity string) (*types.Buyer, error)
	LockByIdentity(dbc dbctx.Context, identity string) (*types.Buyer, error)
	CreatePaymentMethods(dbc dbctx.Context, methods []*types.PaymentMethod) error
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type buyerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBuyerRepo(db *gorm.DB, baseLog *logger.Logger) BuyerRepo {
	return &buyerRepo{
		db:  db,
		log: baseLog.With("repo", "BuyerRepo"),
	}
}

func (r *buyerRepo) Create(dbc dbctx.Context, buyer *types.Buyer) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if buyer == nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).Create(buyer).Error
}

func (r *buyerRepo) GetByIdentity(dbc dbctx.Context, identity string) (*types.Buyer, error) {
	return r.getByIdentity(dbc, identity, false)
}

// LockByIdentity loads the buyer and stored methods under FOR UPDATE so
// the verify-or-add dedup decision is race free within the transaction.
func (r *buyerRepo) LockByIdentity(dbc dbctx.Context, identity string) (*types.Buyer, error) {
	return r.getByIdentity(dbc, identity, true)
}

func (r *buyerRepo) getByIdentity(dbc dbctx.Context, identity string, lock bool) (*types.Buyer, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, nil
	}
	q := transaction.WithContext(dbc.Ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var buyer types.Buyer
	err := q.Preload("PaymentMethods").First(&buyer, "identity = ?", identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &buyer, nil
}

func (r *buyerRepo) CreatePaymentMethods(dbc dbctx.Context, methods []*types.PaymentMethod) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(methods) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).Create(&methods).Error
}

func (r *buyerRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Buyer{}).
		Where("id = ?", id).
		Updates(updates).Error
}
