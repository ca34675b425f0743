package outbox

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/ordering-backend/internal/data/repos/testutil"
	types "github.com/yungbote/ordering-backend/internal/domain"
	do "github.com/yungbote/ordering-backend/internal/domain/outbox"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
	"gorm.io/datatypes"
)

func pendingRow(eventType string) *types.IntegrationEventLog {
	return &types.IntegrationEventLog{
		EventType:     eventType,
		AggregateType: "order",
		AggregateID:   uuid.New(),
		Payload:       datatypes.JSON([]byte(`{}`)),
	}
}

func TestIntegrationEventRepoCreateDefaults(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewIntegrationEventRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	row := pendingRow("order.started")
	if err := repo.Create(dbc, []*types.IntegrationEventLog{row}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if row.ID == uuid.Nil {
		t.Fatalf("Create must assign an id")
	}
	if row.Status != do.StatusPending {
		t.Fatalf("Create status: want=%s got=%s", do.StatusPending, row.Status)
	}
	if row.CreatedAt.IsZero() || row.UpdatedAt.IsZero() {
		t.Fatalf("Create must stamp timestamps")
	}
}

func TestIntegrationEventRepoClaimAndMark(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewIntegrationEventRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	first := pendingRow("order.started")
	second := pendingRow("order.status_changed")
	if err := repo.Create(dbc, []*types.IntegrationEventLog{first, second}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	claimed, err := repo.ClaimPending(dbc, 10)
	if err != nil {
		t.Fatalf("ClaimPending: %v", err)
	}
	if len(claimed) < 2 {
		t.Fatalf("ClaimPending: expected at least the 2 seeded rows, got %d", len(claimed))
	}
	byID := map[uuid.UUID]*types.IntegrationEventLog{}
	for _, row := range claimed {
		if row.Status != do.StatusPublishing {
			t.Fatalf("claimed row status: want=%s got=%s", do.StatusPublishing, row.Status)
		}
		byID[row.ID] = row
	}
	got, ok := byID[first.ID]
	if !ok {
		t.Fatalf("seeded row not claimed")
	}
	if got.Attempts != 1 {
		t.Fatalf("claim must bump attempts: got=%d", got.Attempts)
	}

	if err := repo.MarkPublished(dbc, first.ID); err != nil {
		t.Fatalf("MarkPublished: %v", err)
	}
	var published types.IntegrationEventLog
	if err := tx.First(&published, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("load published: %v", err)
	}
	if published.Status != do.StatusPublished || published.PublishedAt == nil {
		t.Fatalf("published row: status=%s published_at=%v", published.Status, published.PublishedAt)
	}

	if err := repo.MarkFailed(dbc, second.ID, "broker down"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	var failed types.IntegrationEventLog
	if err := tx.First(&failed, "id = ?", second.ID).Error; err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if failed.Status != do.StatusFailed || failed.Error != "broker down" {
		t.Fatalf("failed row: status=%s error=%q", failed.Status, failed.Error)
	}

	// nothing left to claim from this seed
	again, err := repo.ClaimPending(dbc, 10)
	if err != nil {
		t.Fatalf("ClaimPending (drained): %v", err)
	}
	for _, row := range again {
		if row.ID == first.ID || row.ID == second.ID {
			t.Fatalf("settled row claimed again: %s", row.ID)
		}
	}
}

func TestIntegrationEventRepoClaimWithoutInjectedTx(t *testing.T) {
	db := testutil.DB(t)

	repo := NewIntegrationEventRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	row := pendingRow("order.started")
	if err := repo.Create(dbc, []*types.IntegrationEventLog{row}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() {
		db.Delete(&types.IntegrationEventLog{}, "id = ?", row.ID)
	})

	claimed, err := repo.ClaimPending(dbc, 50)
	if err != nil {
		t.Fatalf("ClaimPending: %v", err)
	}
	found := false
	for _, got := range claimed {
		if got.ID != row.ID {
			continue
		}
		found = true
		if got.Status != do.StatusPublishing || got.Attempts != 1 {
			t.Fatalf("claimed row: status=%s attempts=%d", got.Status, got.Attempts)
		}
	}
	if !found {
		t.Fatalf("seeded row not claimed")
	}

	// once claimed the row must stay invisible to further claims
	again, err := repo.ClaimPending(dbc, 50)
	if err != nil {
		t.Fatalf("ClaimPending (second): %v", err)
	}
	for _, got := range again {
		if got.ID == row.ID {
			t.Fatalf("claimed row handed out twice: %s", got.ID)
		}
	}
	var stored types.IntegrationEventLog
	if err := db.First(&stored, "id = ?", row.ID).Error; err != nil {
		t.Fatalf("load claimed: %v", err)
	}
	if stored.Status != do.StatusPublishing || stored.Attempts != 1 {
		t.Fatalf("stored row: status=%s attempts=%d", stored.Status, stored.Attempts)
	}
}

func TestIntegrationEventRepoReclaimStale(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewIntegrationEventRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	row := pendingRow("order.shipped")
	if err := repo.Create(dbc, []*types.IntegrationEventLog{row}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	stale := time.Now().Add(-time.Hour)
	if err := tx.Model(&types.IntegrationEventLog{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{"status": do.StatusPublishing, "updated_at": stale}).Error; err != nil {
		t.Fatalf("backdate row: %v", err)
	}

	n, err := repo.ReclaimStale(dbc, 5*time.Minute)
	if err != nil {
		t.Fatalf("ReclaimStale: %v", err)
	}
	if n < 1 {
		t.Fatalf("ReclaimStale: expected at least 1 row, got %d", n)
	}
	var reclaimed types.IntegrationEventLog
	if err := tx.First(&reclaimed, "id = ?", row.ID).Error; err != nil {
		t.Fatalf("load reclaimed: %v", err)
	}
	if reclaimed.Status != do.StatusPending {
		t.Fatalf("reclaimed status: want=%s got=%s", do.StatusPending, reclaimed.Status)
	}
}
