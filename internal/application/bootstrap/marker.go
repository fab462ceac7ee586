package bootstrap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/buildingai/cozepkg/internal/shared/biztime"
)

const (
	installedFile = ".installed"
	versionsDir   = "versions"
)

// InstallRecord is the content of the installed marker file.
type InstallRecord struct {
	InstalledAt time.Time `json:"installed_at"`
	Version     string    `json:"version"`
	AutoCreated bool      `json:"migration_auto_created,omitempty"`
}

// VersionStamp is written once per applied version.
type VersionStamp struct {
	Version     string    `json:"version"`
	UpgradedAt  time.Time `json:"upgraded_at"`
	Description string    `json:"description"`
}

// Markers reads and writes the on-disk install state under dataDir.
type Markers struct {
	dataDir string
	clock   biztime.Clock
}

func NewMarkers(dataDir string, clock biztime.Clock) *Markers {
	return &Markers{dataDir: dataDir, clock: clock}
}

func (m *Markers) installedPath() string { return filepath.Join(m.dataDir, installedFile) }

func (m *Markers) stampPath(version string) string {
	return filepath.Join(m.dataDir, versionsDir, version)
}

func (m *Markers) Installed() bool {
	_, err := os.Stat(m.installedPath())
	return err == nil
}

// WriteInstalled records the install. autoCreated marks a file recreated
// from the dictionary flag rather than written by an install run.
func (m *Markers) WriteInstalled(version string, autoCreated bool) error {
	return m.writeJSON(m.installedPath(), InstallRecord{
		InstalledAt: m.clock.Now(),
		Version:     version,
		AutoCreated: autoCreated,
	})
}

func (m *Markers) HasStamp(version string) bool {
	_, err := os.Stat(m.stampPath(version))
	return err == nil
}

func (m *Markers) WriteStamp(version string) error {
	return m.writeJSON(m.stampPath(version), VersionStamp{
		Version:     version,
		UpgradedAt:  m.clock.Now(),
		Description: "System upgraded to version " + version,
	})
}

// RemoveStamp deletes the stamp of version. A missing stamp is not an error.
func (m *Markers) RemoveStamp(version string) error {
	err := os.Remove(m.stampPath(version))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove version stamp %s: %w", version, err)
	}
	return nil
}

// Stamps lists every stamped version, sorted by name.
func (m *Markers) Stamps() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(m.dataDir, versionsDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list version stamps: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *Markers) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
