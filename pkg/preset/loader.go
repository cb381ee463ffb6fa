package preset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pitabwire/util"
	"gopkg.in/yaml.v3"
)

// Loader loads and optionally hot-reloads presets from YAML files.
type Loader struct {
	dir string

	mu       sync.RWMutex
	presets  map[string]*Preset
	onReload func(names []string, err error)
}

// NewLoader creates a new preset loader for the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:     dir,
		presets: make(map[string]*Preset),
	}
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string { return l.dir }

// OnReload registers fn to be called after every reload triggered by
// WatchAndReload, with the loaded names or the load error.
func (l *Loader) OnReload(fn func(names []string, err error)) {
	l.mu.Lock()
	l.onReload = fn
	l.mu.Unlock()
}

// LoadAll loads all .yaml and .yml files from the configured directory.
// On error the previously loaded presets are kept.
func (l *Loader) LoadAll() (map[string]*Preset, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read preset dir %q: %w", l.dir, err)
	}

	result := make(map[string]*Preset)
	for _, entry := range entries {
		if entry.IsDir() || !isPresetFile(entry.Name()) {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		presets, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", path, err)
		}
		for _, p := range presets {
			if _, dup := result[p.Name]; dup {
				return nil, fmt.Errorf("load %q: duplicate preset %q", path, p.Name)
			}
			result[p.Name] = p
		}
	}

	l.mu.Lock()
	l.presets = result
	l.mu.Unlock()

	return result, nil
}

// Get returns a loaded preset by name.
func (l *Loader) Get(name string) (*Preset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.presets[name]
	return p, ok
}

// All returns all loaded presets.
func (l *Loader) All() map[string]*Preset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]*Preset, len(l.presets))
	for k, v := range l.presets {
		result[k] = v
	}
	return result
}

// Names returns the loaded preset names in sorted order.
func (l *Loader) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.presets))
	for name := range l.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func isPresetFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

func loadFile(path string) ([]*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	presets := make([]*Preset, 0, len(f.Presets))
	for i := range f.Presets {
		p := &f.Presets[i]
		if err := p.Validate(); err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// WatchAndReload watches the preset directory and reloads on changes.
// It blocks until ctx is done.
func (l *Loader) WatchAndReload(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(l.dir); err != nil {
		return fmt.Errorf("watch dir %q: %w", l.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isPresetFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				l.reload(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (l *Loader) reload(ctx context.Context) {
	loaded, err := l.LoadAll()
	if err != nil {
		util.Log(ctx).WithError(err).Error("preset reload failed, keeping previous presets")
	} else {
		slog.InfoContext(ctx, "presets reloaded",
			slog.String("dir", l.dir), slog.Int("count", len(loaded)))
	}

	l.mu.RLock()
	fn := l.onReload
	l.mu.RUnlock()
	if fn != nil {
		fn(l.Names(), err)
	}
}
