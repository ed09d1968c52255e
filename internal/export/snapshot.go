package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/creditlens/internal/model"
)

// SnapshotVersion is the artifact format version written by WriteSnapshot
const SnapshotVersion = 1

// Snapshot is the serialized canonical contribution map. Developers are
// sorted by key and contributions are in release order, so equal maps
// serialize to identical bytes.
type Snapshot struct {
	Version    int                 `json:"version"`
	Games      []model.Game        `json:"games"`
	Developers []SnapshotDeveloper `json:"developers"`
}

// SnapshotDeveloper is one developer record in a snapshot
type SnapshotDeveloper struct {
	Key           string                 `json:"key"`
	Name          string                 `json:"name"`
	Contributions []SnapshotContribution `json:"contributions"`
}

// SnapshotContribution is one (game, role) pair
type SnapshotContribution struct {
	Game string             `json:"game"`
	Role model.RoleCategory `json:"role"`
}

// NewSnapshot builds the serializable form of a contribution map
func NewSnapshot(order *model.GameOrder, developers model.ContributionMap) *Snapshot {
	snap := &Snapshot{
		Version:    SnapshotVersion,
		Games:      order.Games(),
		Developers: make([]SnapshotDeveloper, 0, developers.Len()),
	}

	for _, key := range developers.Keys() {
		dev := developers[key]
		sd := SnapshotDeveloper{
			Key:           dev.Key,
			Name:          dev.Name,
			Contributions: make([]SnapshotContribution, 0, len(dev.Contributions)),
		}
		for _, c := range dev.Contributions {
			sd.Contributions = append(sd.Contributions, SnapshotContribution{Game: c.Game, Role: c.Role})
		}
		snap.Developers = append(snap.Developers, sd)
	}

	return snap
}

// Restore validates the snapshot and rebuilds the game order and map.
// Every stored contribution was in scope when written.
func (s *Snapshot) Restore() (*model.GameOrder, model.ContributionMap, error) {
	if s.Version != SnapshotVersion {
		return nil, nil, fmt.Errorf("unsupported snapshot version %d (want %d)", s.Version, SnapshotVersion)
	}

	order, err := model.NewGameOrder(s.Games)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot games: %w", err)
	}

	developers := make(model.ContributionMap, len(s.Developers))
	for i, sd := range s.Developers {
		key := strings.TrimSpace(sd.Key)
		if key == "" {
			return nil, nil, fmt.Errorf("snapshot developer %d has no key", i)
		}
		if _, dup := developers[key]; dup {
			return nil, nil, fmt.Errorf("snapshot developer %q listed twice", key)
		}

		dev := &model.Developer{
			Key:           key,
			Name:          sd.Name,
			Contributions: make([]model.Contribution, 0, len(sd.Contributions)),
		}

		last := -1
		for _, c := range sd.Contributions {
			idx, ok := order.Index(c.Game)
			if !ok {
				return nil, nil, fmt.Errorf("snapshot developer %q: %w", key, &model.UnknownGameReferenceError{Game: c.Game})
			}
			if idx <= last {
				return nil, nil, fmt.Errorf("snapshot developer %q: contribution to %s is out of order or repeated", key, c.Game)
			}
			last = idx

			if !c.Role.Valid() {
				return nil, nil, fmt.Errorf("snapshot developer %q: unknown role %q", key, c.Role)
			}

			dev.Contributions = append(dev.Contributions, model.Contribution{Game: c.Game, Role: c.Role, InScope: true})
		}

		developers[key] = dev
	}

	return order, developers, nil
}

// WriteSnapshot writes the contribution map as indented JSON
func WriteSnapshot(w io.Writer, order *model.GameOrder, developers model.ContributionMap) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSnapshot(order, developers)); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot reads and validates a snapshot written by WriteSnapshot
func ReadSnapshot(r io.Reader) (*model.GameOrder, model.ContributionMap, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap.Restore()
}

// SaveSnapshotFile writes the snapshot to path, replacing any previous file
// only once the new content is fully written
func SaveSnapshotFile(path string, order *model.GameOrder, developers model.ContributionMap) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := WriteSnapshot(tmp, order, developers); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshotFile reads a snapshot from path
func LoadSnapshotFile(path string) (*model.GameOrder, model.ContributionMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	return ReadSnapshot(f)
}
