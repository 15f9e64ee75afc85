package repository

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/OliveiraNt/kafka-admin-api/internal/config"
	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
	"github.com/OliveiraNt/kafka-admin-api/internal/metrics"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

const (
	debounceDelay = 350 * time.Millisecond
	// retireDelay is how long a replaced or removed driver stays open so calls
	// already holding it can finish. It matches the longest per-call timeout.
	retireDelay = 30 * time.Second
)

// ErrClosed is returned by LoadFromFile once Close has been called.
var ErrClosed = errors.New("cluster repository closed")

type entry struct {
	cfg    config.ClusterConfig
	driver domain.ClusterDriver
}

// ClusterRepository holds the clusters of the config file and one driver per
// cluster. The file is only ever read; edits made to it are picked up by Watch.
type ClusterRepository struct {
	mu         sync.RWMutex
	entries    map[string]entry
	configData config.FileConfig
	configPath string
	factory    domain.DriverFactory

	watcher     *fsnotify.Watcher
	reloadTimer *time.Timer
	closed      bool

	retireDelay time.Duration
	retiring    map[domain.ClusterDriver]*time.Timer
}

// NewClusterRepository creates a new cluster repository
func NewClusterRepository(configPath string, factory domain.DriverFactory) *ClusterRepository {
	return &ClusterRepository{
		entries:     make(map[string]entry),
		configPath:  configPath,
		factory:     factory,
		retireDelay: retireDelay,
		retiring:    make(map[domain.ClusterDriver]*time.Timer),
	}
}

// LoadFromFile loads configuration from file and reconciles drivers with it.
// On error the previous configuration stays in effect.
func (r *ClusterRepository) LoadFromFile() error {
	cfg, err := config.ReadConfig(r.configPath)
	if err != nil {
		return err
	}
	return r.reconcile(cfg)
}

// Server returns the server section of the last loaded file.
func (r *ClusterRepository) Server() config.ServerConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.configData.Server
}

// FindByName retrieves a cluster configuration by name
func (r *ClusterRepository) FindByName(name string) (config.ClusterConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.configData.Clusters {
		if c.Name == name {
			return c, true
		}
	}
	return config.ClusterConfig{}, false
}

// FindAll retrieves all cluster configurations in file order
func (r *ClusterRepository) FindAll() []config.ClusterConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]config.ClusterConfig, len(r.configData.Clusters))
	copy(out, r.configData.Clusters)
	return out
}

// GetDriver returns the driver for the given cluster name
func (r *ClusterRepository) GetDriver(name string) (domain.ClusterDriver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	return e.driver, ok
}

// Watch sets a fsnotify watcher on the file's directory for hot reload.
func (r *ClusterRepository) Watch() error {
	abs, err := filepath.Abs(r.configPath)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		_ = w.Close()
		return ErrClosed
	}
	r.watcher = w
	r.mu.Unlock()

	go r.watchLoop(w, abs)
	return nil
}

func (r *ClusterRepository) watchLoop(w *fsnotify.Watcher, abs string) {
	reload := func() {
		// editors replace files by rename; give the new file a moment to appear
		for i := 0; i < 10; i++ {
			if _, err := os.Stat(abs); err == nil {
				break
			}
			time.Sleep(100 * time.Millisecond)
		}

		utils.Logger.Info("config file changed", "path", abs)
		if err := r.LoadFromFile(); err != nil && !errors.Is(err, ErrClosed) {
			utils.Logger.Error("failed to reload config", "path", abs, "err", err)
		}
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Name != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove|fsnotify.Chmod) == 0 {
				continue
			}
			r.mu.Lock()
			if r.closed {
				r.mu.Unlock()
				return
			}
			if r.reloadTimer == nil {
				r.reloadTimer = time.AfterFunc(debounceDelay, reload)
			} else {
				r.reloadTimer.Reset(debounceDelay)
			}
			r.mu.Unlock()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			utils.Logger.Warn("fsnotify error", "err", err)
		}
	}
}

// Close stops the watcher and closes every driver, including retired ones
// still draining. A reload racing with Close leaves no driver open.
func (r *ClusterRepository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	if r.reloadTimer != nil {
		r.reloadTimer.Stop()
		r.reloadTimer = nil
	}
	if r.watcher != nil {
		_ = r.watcher.Close()
		r.watcher = nil
	}
	for name, e := range r.entries {
		e.driver.Close()
		delete(r.entries, name)
	}
	for driver, t := range r.retiring {
		if t.Stop() {
			driver.Close()
		}
		delete(r.retiring, driver)
	}
}

// retire closes driver once retireDelay has passed. Callers hold r.mu.
func (r *ClusterRepository) retire(driver domain.ClusterDriver) {
	if r.retireDelay <= 0 {
		driver.Close()
		return
	}
	r.retiring[driver] = time.AfterFunc(r.retireDelay, func() {
		driver.Close()
		r.mu.Lock()
		delete(r.retiring, driver)
		r.mu.Unlock()
	})
}

// reconcile synchronizes drivers with configuration: new clusters get a
// driver, changed clusters get a fresh one, removed clusters are retired.
func (r *ClusterRepository) reconcile(cfg config.FileConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.configData = cfg
	existing := make(map[string]struct{}, len(cfg.Clusters))
	for _, c := range cfg.Clusters {
		existing[c.Name] = struct{}{}

		cur, ok := r.entries[c.Name]
		if ok && cur.cfg.Equal(c) {
			continue
		}
		if ok {
			r.retire(cur.driver)
			delete(r.entries, c.Name)
		}
		driver, err := r.factory.CreateDriver(c)
		if err != nil {
			utils.Logger.Error("failed to create driver", "cluster", c.Name, "err", err)
			continue
		}
		r.entries[c.Name] = entry{cfg: c, driver: driver}
		if ok {
			utils.Logger.Info("cluster driver recreated", "cluster", c.Name)
		} else {
			utils.Logger.Info("cluster driver created", "cluster", c.Name, "brokers", c.Brokers)
		}
	}

	for name, e := range r.entries {
		if _, ok := existing[name]; !ok {
			r.retire(e.driver)
			delete(r.entries, name)
			metrics.ForgetCluster(name)
			utils.Logger.Info("cluster driver removed", "cluster", name)
		}
	}
	return nil
}
