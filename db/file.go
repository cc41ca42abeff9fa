package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/models"
)

var _ gateway.SettingsGateway = (*FileStore)(nil)

// FileStore keeps the settings in a JSON file and the usage ledger in
// emulator_usage.json in the same folder
type FileStore struct {
	mu           sync.Mutex
	settingsPath string
	usagePath    string
	lastWritten  []byte
}

func NewFileStore(settingsPath string) *FileStore {
	return &FileStore{
		settingsPath: settingsPath,
		usagePath:    filepath.Join(filepath.Dir(settingsPath), "emulator_usage.json"),
	}
}

func (s *FileStore) SettingsPath() string {
	return s.settingsPath
}

// GetSettings returns the defaults when nothing was saved yet, missing keys keep their default
func (s *FileStore) GetSettings(ctx context.Context) (models.Settings, error) {
	settings := models.DefaultSettings()
	if err := ctx.Err(); err != nil {
		return settings, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.settingsPath)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("could not read settings file `%s`: %w", s.settingsPath, err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.DefaultSettings(), fmt.Errorf("could not parse settings file `%s`: %w", s.settingsPath, err)
	}
	return settings, nil
}

func (s *FileStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFileAtomic(s.settingsPath, data); err != nil {
		return fmt.Errorf("could not write settings file `%s`: %w", s.settingsPath, err)
	}
	s.lastWritten = data
	return nil
}

// writtenByStore reports whether data is what the store itself last saved
func (s *FileStore) writtenByStore(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastWritten != nil && bytes.Equal(s.lastWritten, data)
}

func (s *FileStore) TouchUsage(ctx context.Context, platform models.Platform, id string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.readUsage()
	if err != nil {
		return err
	}
	doc := usageDocument{
		ID:         usageDocID(platform, id),
		Platform:   string(platform),
		EmulatorID: id,
		LastUsedAt: at.UnixMilli(),
	}
	docs[doc.ID] = doc

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode usage: %w", err)
	}
	return writeFileAtomic(s.usagePath, data)
}

func (s *FileStore) LastUsed(ctx context.Context, platform models.Platform) (map[string]time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.readUsage()
	if err != nil {
		return nil, err
	}
	var platformDocs []usageDocument
	for _, doc := range docs {
		if doc.Platform == string(platform) {
			platformDocs = append(platformDocs, doc)
		}
	}
	return usageMap(platformDocs), nil
}

func (s *FileStore) readUsage() (map[string]usageDocument, error) {
	docs := make(map[string]usageDocument)
	data, err := os.ReadFile(s.usagePath)
	if errors.Is(err, os.ErrNotExist) {
		return docs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read usage file `%s`: %w", s.usagePath, err)
	}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("could not parse usage file `%s`: %w", s.usagePath, err)
	}
	return docs, nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
