package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/utils"
)

// Launcher builds the launch function of a seeded app.
type Launcher func(manifest types.Manifest) LaunchFunc

// Seeder loads extra app manifests from a directory tree. YAML, TOML and
// JSON manifests are recognized by extension.
type Seeder struct {
	manager  *Manager
	appsDir  string
	launcher Launcher
	logger   *zap.Logger
}

// SeedResult counts the manifests a seeding pass handled.
type SeedResult struct {
	Loaded int `json:"loaded"`
	Failed int `json:"failed"`
}

// NewSeeder creates a new app seeder
func NewSeeder(manager *Manager, appsDir string, launcher Launcher, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		manager:  manager,
		appsDir:  appsDir,
		launcher: launcher,
		logger:   logger,
	}
}

// SeedApps registers every manifest found below the apps directory. A
// missing directory is not an error. Manifests that fail to decode or
// register are logged and counted, and do not stop the pass.
func (s *Seeder) SeedApps(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	if s.appsDir == "" {
		return result, nil
	}

	if _, err := os.Stat(s.appsDir); errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Apps directory not found", zap.String("dir", s.appsDir))
		return result, nil
	}

	paths, err := s.manifestPaths(ctx)
	if err != nil {
		return result, fmt.Errorf("walk %s: %w", s.appsDir, err)
	}

	for _, path := range paths {
		if err := s.loadApp(path); err != nil {
			s.logger.Warn("Failed to load app manifest", zap.String("path", path), zap.Error(err))
			result.Failed++
			continue
		}
		s.logger.Debug("Loaded app manifest", zap.String("path", path))
		result.Loaded++
	}

	s.logger.Info("Seeding complete",
		zap.Int("loaded", result.Loaded),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// manifestPaths returns manifest files below the apps directory, sorted
// so registration order does not depend on walk scheduling.
func (s *Seeder) manifestPaths(ctx context.Context) ([]string, error) {
	var (
		mu    sync.Mutex
		paths []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, s.appsDir, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}
		if !isManifest(p) {
			return nil
		}

		mu.Lock()
		paths = append(paths, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func isManifest(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml", ".json":
		return true
	}
	return false
}

// loadApp decodes one manifest file and registers it
func (s *Seeder) loadApp(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	manifest, err := DecodeManifest(filepath.Ext(path), data)
	if err != nil {
		return err
	}
	manifest.Source = path

	return s.manager.Register(App{
		Manifest: manifest,
		Launch:   s.launcher(manifest),
	})
}

// DecodeManifest parses a manifest in the format named by ext and checks
// its required fields.
func DecodeManifest(ext string, data []byte) (types.Manifest, error) {
	var (
		m   types.Manifest
		err error
	)

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".json":
		err = sonic.Unmarshal(data, &m)
	default:
		return m, fmt.Errorf("unsupported manifest format %q", ext)
	}
	if err != nil {
		return m, fmt.Errorf("decode manifest: %w", err)
	}

	if err := utils.ValidateManifest(m); err != nil {
		return m, fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}
	return m, nil
}
