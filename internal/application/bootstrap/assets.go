package bootstrap

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/buildingai/cozepkg/internal/shared/logger"
)

//go:embed data
var embedded embed.FS

// SourceEmbedded is reported when no file on disk overrides a bundled asset.
const SourceEmbedded = "embedded"

// Assets locates bundled JSON definitions. A file on disk wins over the
// copy compiled into the binary so operators can patch seeds in place.
type Assets struct {
	cwd       string
	binaryDir string
	assetDir  string
	bundled   fs.FS
	logger    logger.Interface
}

func NewAssets(assetDir string, log logger.Interface) *Assets {
	cwd, _ := os.Getwd()
	binaryDir := ""
	if exe, err := os.Executable(); err == nil {
		binaryDir = filepath.Dir(exe)
	}
	return &Assets{
		cwd:       cwd,
		binaryDir: binaryDir,
		assetDir:  assetDir,
		bundled:   embedded,
		logger:    log,
	}
}

// NewAssetsAt is NewAssets with explicit lookup roots.
func NewAssetsAt(cwd, binaryDir, assetDir string, log logger.Interface) *Assets {
	a := NewAssets(assetDir, log)
	a.cwd, a.binaryDir = cwd, binaryDir
	return a
}

// Install reads an install-time file and reports where it came from.
func (a *Assets) Install(name string) ([]byte, string, error) {
	candidates := []string{
		a.join(a.cwd, "internal", "application", "bootstrap", "data", "install", name),
		a.join(a.cwd, "data", "install", name),
		a.join(a.binaryDir, "data", "install", name),
		a.join(a.assetDir, name),
	}
	return a.read(candidates, path.Join("data", "install", name))
}

// UpgradeMenu reads the menu definition shipped with version. found is false
// when the version has none.
func (a *Assets) UpgradeMenu(version string) (data []byte, found bool, err error) {
	candidates := []string{
		a.join(a.cwd, "data", "upgrade", version, "menu.json"),
		a.join(a.binaryDir, "data", "upgrade", version, "menu.json"),
		a.join(a.assetDir, "upgrade", version, "menu.json"),
	}
	data, _, err = a.read(candidates, path.Join("data", "upgrade", version, "menu.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	return data, err == nil, err
}

func (a *Assets) read(candidates []string, bundledPath string) ([]byte, string, error) {
	for _, p := range candidates {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err == nil {
			a.logger.Debugw("using asset from disk", "path", p)
			return data, p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, p, fmt.Errorf("failed to read %s: %w", p, err)
		}
	}

	data, err := fs.ReadFile(a.bundled, bundledPath)
	if err != nil {
		return nil, "", fmt.Errorf("asset %s: %w", bundledPath, err)
	}
	return data, SourceEmbedded, nil
}

func (a *Assets) join(root string, elem ...string) string {
	if root == "" {
		return ""
	}
	return filepath.Join(append([]string{root}, elem...)...)
}
