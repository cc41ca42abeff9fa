// Package db persists the user settings and the emulator usage ledger,
// either in a JSON file next to the provider or in RethinkDB.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/models"
	r "gopkg.in/rethinkdb/rethinkdb-go.v6"
)

const (
	settingsTable = "settings"
	settingsDocID = "settings"
	usageTable    = "emulator_usage"
)

var _ gateway.SettingsGateway = (*RethinkStore)(nil)

type usageDocument struct {
	ID         string `rethinkdb:"id" json:"id"`
	Platform   string `rethinkdb:"platform" json:"platform"`
	EmulatorID string `rethinkdb:"emulator_id" json:"emulator_id"`
	LastUsedAt int64  `rethinkdb:"last_used_at" json:"last_used_at"`
}

func usageDocID(platform models.Platform, id string) string {
	return string(platform) + ":" + id
}

// RethinkStore keeps the settings as a single document with id `settings`
type RethinkStore struct {
	session r.QueryExecutor
}

func NewRethinkStore(session r.QueryExecutor) *RethinkStore {
	return &RethinkStore{session: session}
}

// ConnectRethinkStore connects to address and makes sure both tables exist
func ConnectRethinkStore(address, database string) (*RethinkStore, error) {
	session, err := r.Connect(r.ConnectOpts{
		Address:  address,
		Database: database,
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to RethinkDB on %s: %w", address, err)
	}

	var tables []string
	cursor, err := r.TableList().Run(session)
	if err != nil {
		return nil, fmt.Errorf("could not list RethinkDB tables: %w", err)
	}
	defer cursor.Close()
	if err := cursor.All(&tables); err != nil {
		return nil, fmt.Errorf("could not read RethinkDB tables: %w", err)
	}

	for _, table := range []string{settingsTable, usageTable} {
		if contains(tables, table) {
			continue
		}
		if err := r.TableCreate(table).Exec(session); err != nil {
			return nil, fmt.Errorf("could not create table `%s`: %w", table, err)
		}
	}
	return NewRethinkStore(session), nil
}

func (s *RethinkStore) GetSettings(ctx context.Context) (models.Settings, error) {
	settings := models.DefaultSettings()

	cursor, err := r.Table(settingsTable).Get(settingsDocID).Run(s.session, r.RunOpts{Context: ctx})
	if err != nil {
		return settings, fmt.Errorf("could not get settings from db: %w", err)
	}
	defer cursor.Close()

	if cursor.IsNil() {
		return settings, nil
	}
	if err := cursor.One(&settings); err != nil {
		return settings, fmt.Errorf("could not decode settings from db: %w", err)
	}
	return settings, nil
}

// SaveSettings replaces the whole settings document
func (s *RethinkStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	err := r.Table(settingsTable).
		Insert(r.Expr(settings).Merge(map[string]interface{}{"id": settingsDocID}), r.InsertOpts{Conflict: "replace"}).
		Exec(s.session, r.ExecOpts{Context: ctx})
	if err != nil {
		return fmt.Errorf("could not save settings to db: %w", err)
	}
	return nil
}

func (s *RethinkStore) TouchUsage(ctx context.Context, platform models.Platform, id string, at time.Time) error {
	doc := usageDocument{
		ID:         usageDocID(platform, id),
		Platform:   string(platform),
		EmulatorID: id,
		LastUsedAt: at.UnixMilli(),
	}
	err := r.Table(usageTable).Insert(doc, r.InsertOpts{Conflict: "replace"}).Exec(s.session, r.ExecOpts{Context: ctx})
	if err != nil {
		return fmt.Errorf("could not update usage of `%s`: %w", doc.ID, err)
	}
	return nil
}

func (s *RethinkStore) LastUsed(ctx context.Context, platform models.Platform) (map[string]time.Time, error) {
	cursor, err := r.Table(usageTable).Filter(map[string]interface{}{"platform": string(platform)}).Run(s.session, r.RunOpts{Context: ctx})
	if err != nil {
		return nil, fmt.Errorf("could not get %s usage from db: %w", platform, err)
	}
	defer cursor.Close()

	var docs []usageDocument
	if err := cursor.All(&docs); err != nil {
		return nil, fmt.Errorf("could not decode %s usage from db: %w", platform, err)
	}
	return usageMap(docs), nil
}

func usageMap(docs []usageDocument) map[string]time.Time {
	lastUsed := make(map[string]time.Time, len(docs))
	for _, doc := range docs {
		lastUsed[doc.EmulatorID] = time.UnixMilli(doc.LastUsedAt).UTC()
	}
	return lastUsed
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
