package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/ordering-backend/internal/domain"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
)

type fakeClientRequestRepo struct {
	existing map[uuid.UUID]bool

	deleteCalls  int
	deleteCutoff time.Time
	deleted      int64
}

func (f *fakeClientRequestRepo) Create(_ dbctx.Context, req *types.ClientRequest) error {
	if f.existing == nil {
		f.existing = map[uuid.UUID]bool{}
	}
	f.existing[req.ID] = true
	return nil
}

func (f *fakeClientRequestRepo) Exists(_ dbctx.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

func (f *fakeClientRequestRepo) GetByID(_ dbctx.Context, _ uuid.UUID) (*types.ClientRequest, error) {
	return nil, nil
}

func (f *fakeClientRequestRepo) DeleteOlderThan(_ dbctx.Context, cutoff time.Time) (int64, error) {
	f.deleteCalls++
	f.deleteCutoff = cutoff
	return f.deleted, nil
}

func TestRequestManagerExists(t *testing.T) {
	id := uuid.New()
	repo := &fakeClientRequestRepo{existing: map[uuid.UUID]bool{id: true}}
	m := NewRequestManager(repo, time.Hour, nil)

	seen, err := m.Exists(context.Background(), id)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !seen {
		t.Fatalf("want seen=true")
	}
	seen, err = m.Exists(context.Background(), uuid.New())
	if err != nil || seen {
		t.Fatalf("unknown id: seen=%v err=%v", seen, err)
	}
}

func TestRequestManagerExistsNilID(t *testing.T) {
	m := NewRequestManager(&fakeClientRequestRepo{}, time.Hour, nil)
	seen, err := m.Exists(context.Background(), uuid.Nil)
	if err != nil || seen {
		t.Fatalf("nil id: seen=%v err=%v", seen, err)
	}
}

func TestPurgeExpiredUsesRetentionCutoff(t *testing.T) {
	repo := &fakeClientRequestRepo{deleted: 7}
	m := NewRequestManager(repo, 24*time.Hour, nil)

	n, err := m.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 7 {
		t.Fatalf("deleted: want=7 got=%d", n)
	}
	if repo.deleteCalls != 1 {
		t.Fatalf("delete calls: want=1 got=%d", repo.deleteCalls)
	}
	wantCutoff := time.Now().UTC().Add(-24 * time.Hour)
	if diff := repo.deleteCutoff.Sub(wantCutoff); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("cutoff: want around %v got=%v", wantCutoff, repo.deleteCutoff)
	}
}

func TestPurgeExpiredDisabledRetention(t *testing.T) {
	repo := &fakeClientRequestRepo{deleted: 7}
	m := NewRequestManager(repo, 0, nil)

	n, err := m.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 0 {
		t.Fatalf("zero retention keeps rows forever, got=%d", n)
	}
	if repo.deleteCalls != 0 {
		t.Fatalf("delete must not run with retention disabled")
	}
}
