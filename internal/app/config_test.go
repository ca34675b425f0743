package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/ordering-backend/internal/domain/ordering"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestLoadPolicyParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	raw := []byte(`
card_types:
  - id: 1
    name: Amex
  - id: 4
    name: Discover
request_retention: 72h
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	p, err := loadPolicy(path)
	if err != nil {
		t.Fatalf("loadPolicy: %v", err)
	}
	if len(p.CardTypes) != 2 || p.CardTypes[1].Name != "Discover" {
		t.Fatalf("card types: %+v", p.CardTypes)
	}
	if p.RequestRetention != "72h" {
		t.Fatalf("request retention: got=%q", p.RequestRetention)
	}
}

func TestLoadPolicyMissingFile(t *testing.T) {
	if _, err := loadPolicy(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestApplyPolicyOverridesCardTypesAndRetention(t *testing.T) {
	log := testLogger(t)
	cfg := Config{CardTypes: ordering.DefaultCardTypes()}
	p := Policy{RequestRetention: "48h"}
	p.CardTypes = []struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
	}{
		{ID: 2, Name: "Visa"},
		{ID: 4, Name: "Discover"},
	}

	applyPolicy(&cfg, p, log)
	if len(cfg.CardTypes) != 2 || cfg.CardTypes[1].Name != "Discover" {
		t.Fatalf("card types: %+v", cfg.CardTypes)
	}
	if cfg.RequestRetention != 48*time.Hour {
		t.Fatalf("retention: got=%v", cfg.RequestRetention)
	}
}

func TestApplyPolicySkipsInvalidEntries(t *testing.T) {
	log := testLogger(t)
	cfg := Config{CardTypes: ordering.DefaultCardTypes(), RequestRetention: time.Hour}
	p := Policy{RequestRetention: "soon"}
	p.CardTypes = []struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
	}{
		{ID: 0, Name: "Broken"},
		{ID: 5, Name: "   "},
	}

	applyPolicy(&cfg, p, log)
	if len(cfg.CardTypes) != len(ordering.DefaultCardTypes()) {
		t.Fatalf("invalid card types must not replace the defaults: %+v", cfg.CardTypes)
	}
	if cfg.RequestRetention != time.Hour {
		t.Fatalf("unparseable retention must be ignored, got=%v", cfg.RequestRetention)
	}
}
