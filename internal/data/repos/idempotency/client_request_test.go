package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/ordering-backend/internal/data/repos/testutil"
	types "github.com/yungbote/ordering-backend/internal/domain"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
	"gorm.io/datatypes"
)

func TestClientRequestRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewClientRequestRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	id := uuid.New()
	req := &types.ClientRequest{
		ID:      id,
		Name:    "CreateOrderCommand",
		Payload: datatypes.JSON([]byte(`{"order_id":"x"}`)),
	}
	if err := repo.Create(dbc, req); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.CreatedAt.IsZero() {
		t.Fatalf("Create must stamp created_at")
	}

	exists, err := repo.Exists(dbc, id)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatalf("Exists: expected true")
	}

	exists, err = repo.Exists(dbc, uuid.New())
	if err != nil {
		t.Fatalf("Exists (missing): %v", err)
	}
	if exists {
		t.Fatalf("Exists (missing): expected false")
	}

	got, err := repo.GetByID(dbc, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "CreateOrderCommand" {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}
}

func TestClientRequestRepoDuplicatePrimaryKey(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewClientRequestRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	id := uuid.New()
	if err := repo.Create(dbc, &types.ClientRequest{ID: id, Name: "CancelOrderCommand"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if err := repo.Create(dbc, &types.ClientRequest{ID: id, Name: "CancelOrderCommand"}); err == nil {
		t.Fatalf("duplicate id must fail with a unique violation")
	}
}

func TestClientRequestRepoDeleteOlderThan(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewClientRequestRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	now := time.Now().UTC()
	old := &types.ClientRequest{ID: uuid.New(), Name: "ShipOrderCommand", CreatedAt: now.Add(-48 * time.Hour)}
	fresh := &types.ClientRequest{ID: uuid.New(), Name: "ShipOrderCommand", CreatedAt: now}
	if err := repo.Create(dbc, old); err != nil {
		t.Fatalf("Create old: %v", err)
	}
	if err := repo.Create(dbc, fresh); err != nil {
		t.Fatalf("Create fresh: %v", err)
	}

	deleted, err := repo.DeleteOlderThan(dbc, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("DeleteOlderThan: want=1 got=%d", deleted)
	}

	exists, err := repo.Exists(dbc, fresh.ID)
	if err != nil || !exists {
		t.Fatalf("fresh row must survive: exists=%v err=%v", exists, err)
	}
	exists, err = repo.Exists(dbc, old.ID)
	if err != nil || exists {
		t.Fatalf("old row must be gone: exists=%v err=%v", exists, err)
	}
}
