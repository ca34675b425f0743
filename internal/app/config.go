package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/ordering-backend/internal/domain/ordering"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
	"github.com/yungbote/ordering-backend/internal/utils"
)

type Config struct {
	JWTSecretKey string
	HTTPAddr     string
	MetricsAddr  string

	// RequestRetention bounds how long processed request ids are kept for
	// replay detection; zero keeps them forever.
	RequestRetention time.Duration
	JanitorInterval  time.Duration

	OutboxInterval     time.Duration
	OutboxBatchSize    int
	OutboxStaleTimeout time.Duration
	OutboxMaxAttempts  int

	EventsEnabled bool
	RedisAddr     string

	CardTypes []ordering.CardType
}

// Policy is the optional YAML policy file (ORDERING_POLICY_FILE). It covers
// the knobs operators tune without redeploying: the accepted card brands and
// the dedup retention window.
type Policy struct {
	CardTypes []struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"card_types"`
	RequestRetention string `yaml:"request_retention"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		JWTSecretKey:       utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		HTTPAddr:           utils.GetEnv("HTTP_ADDR", ":8080", log),
		MetricsAddr:        utils.GetEnv("METRICS_ADDR", ":9090", log),
		RequestRetention:   utils.GetEnvAsDuration("REQUEST_RETENTION", 0, log),
		JanitorInterval:    utils.GetEnvAsDuration("REQUEST_JANITOR_INTERVAL", time.Hour, log),
		OutboxInterval:     utils.GetEnvAsDuration("OUTBOX_INTERVAL", 2*time.Second, log),
		OutboxBatchSize:    utils.GetEnvAsInt("OUTBOX_BATCH_SIZE", 50, log),
		OutboxStaleTimeout: utils.GetEnvAsDuration("OUTBOX_STALE_TIMEOUT", 5*time.Minute, log),
		OutboxMaxAttempts:  utils.GetEnvAsInt("OUTBOX_MAX_ATTEMPTS", 10, log),
		EventsEnabled:      utils.GetEnvAsBool("EVENTS_ENABLED", false, log),
		RedisAddr:          utils.GetEnv("REDIS_ADDR", "", log),
		CardTypes:          ordering.DefaultCardTypes(),
	}

	policyPath := strings.TrimSpace(utils.GetEnv("ORDERING_POLICY_FILE", "", log))
	if policyPath == "" {
		return cfg
	}
	policy, err := loadPolicy(policyPath)
	if err != nil {
		log.Warn("policy file ignored", "path", policyPath, "error", err)
		return cfg
	}
	applyPolicy(&cfg, policy, log)
	return cfg
}

func loadPolicy(path string) (Policy, error) {
	var p Policy
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse policy yaml: %w", err)
	}
	return p, nil
}

func applyPolicy(cfg *Config, p Policy, log *logger.Logger) {
	if len(p.CardTypes) > 0 {
		cardTypes := make([]ordering.CardType, 0, len(p.CardTypes))
		for _, ct := range p.CardTypes {
			name := strings.TrimSpace(ct.Name)
			if ct.ID <= 0 || name == "" {
				log.Warn("policy card type skipped", "id", ct.ID, "name", ct.Name)
				continue
			}
			cardTypes = append(cardTypes, ordering.CardType{ID: ct.ID, Name: name})
		}
		if len(cardTypes) > 0 {
			cfg.CardTypes = cardTypes
		}
	}
	if raw := strings.TrimSpace(p.RequestRetention); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			log.Warn("policy request_retention ignored", "value", raw, "error", err)
		} else {
			cfg.RequestRetention = d
		}
	}
}
