package fitness

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// profileSchemaVersion is bumped whenever the stored shape changes. Loads
// of older documents are default-filled rather than rejected.
const profileSchemaVersion = 1

// ProfileStore is the key-value persistent store behind the Ledger: one
// load at startup, a save after every mutation, a clear on logout.
type ProfileStore interface {
	Load() (*UserProfile, error)
	Save(profile UserProfile) error
	Clear() error
}

// storedProfile is the on-disk document
type storedProfile struct {
	SchemaVersion int         `json:"schema_version"`
	Profile       UserProfile `json:"profile"`
}

// JSONProfileStore keeps the profile as a JSON document on disk
type JSONProfileStore struct {
	filePath string
	logger   *log.Logger
}

// DefaultProfilePath returns ~/.fit-circuit/profile.json, falling back to
// the working directory when the home directory is unknown.
func DefaultProfilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".fit-circuit", "profile.json")
}

func NewJSONProfileStore(filePath string, logger *log.Logger) *JSONProfileStore {
	if logger == nil {
		panic("JSONProfileStore: logger cannot be nil")
	}
	if filePath == "" {
		filePath = DefaultProfilePath()
	}
	return &JSONProfileStore{filePath: filePath, logger: logger}
}

// Load reads the stored profile. A missing file means no profile yet and
// returns (nil, nil). Collections absent from older documents are
// default-filled so old saves keep deserializing.
func (s *JSONProfileStore) Load() (*UserProfile, error) {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Printf("ProfileStore: load %s (no existing file)", s.filePath)
			return nil, nil
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var doc storedProfile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	profile := doc.Profile
	fillProfileDefaults(&profile)

	s.logger.Printf("ProfileStore: load %s (schema v%d)", s.filePath, doc.SchemaVersion)
	return &profile, nil
}

// Save writes the full profile document
func (s *JSONProfileStore) Save(profile UserProfile) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	doc := storedProfile{SchemaVersion: profileSchemaVersion, Profile: profile}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.WriteFile(s.filePath, raw, 0644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Clear removes the stored profile. A missing file is not an error.
func (s *JSONProfileStore) Clear() error {
	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear profile: %w", err)
	}
	s.logger.Printf("ProfileStore: cleared %s", s.filePath)
	return nil
}

// fillProfileDefaults replaces nil collections with empty ones. This is the
// single place old saved documents get upgraded; mutators can assume the
// collections exist.
func fillProfileDefaults(p *UserProfile) {
	if p.CompletedWorkouts == nil {
		p.CompletedWorkouts = []string{}
	}
	if p.WorkoutHistory == nil {
		p.WorkoutHistory = []HistoryEntry{}
	}
	if p.WaterHistory == nil {
		p.WaterHistory = []HistoryEntry{}
	}
	if p.WeightHistory == nil {
		p.WeightHistory = []HistoryEntry{}
	}
}
