package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/client/config"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/company"
	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

const companiesLookup = "companies"

// App wires the client together: durable store, gateway, merged view,
// capture service, sync engine and connectivity observer.
type App struct {
	config   *config.Config
	log      *slog.Logger
	gateway  Gateway
	store    Store
	view     *View
	capture  *Capture
	engine   *Engine
	observer *Observer

	events chan bool

	mu             sync.RWMutex
	authenticated  bool
	sessionCompany string
	storageWarning string
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{
		config: cfg,
		log:    log,
		events: make(chan bool, 8),
	}

	// SQLite first; an init failure degrades to in-memory capture with a
	// user-visible warning instead of crashing the entry flow.
	sqliteStore, err := NewSQLiteStore(cfg.DataPath, log)
	if err != nil {
		log.Warn("durable store unavailable, falling back to memory", "error", err)
		app.store = NewMemoryStore()
		app.storageWarning = fmt.Sprintf("local storage unavailable (%v); offline captures will be lost on exit", err)
	} else {
		app.store = sqliteStore
	}

	app.gateway = NewHTTPGateway(cfg, log)
	app.view = NewView(app.store, app.gateway, log)
	app.observer = NewObserver(app.events, time.Duration(cfg.DebounceMillis)*time.Millisecond, true, log)
	app.engine = NewEngine(app.store, app.gateway, app.view, app.Scope, log)
	app.capture = NewCapture(app.store, app.gateway, app.view, app.observer.Online, app.Scope, log)

	if token, err := app.loadToken(); err == nil && token != "" {
		app.gateway.SetToken(token)
		app.mu.Lock()
		app.authenticated = true
		app.mu.Unlock()
		log.Debug("session token loaded")
	}
	if scope, err := os.ReadFile(app.scopePath()); err == nil {
		app.mu.Lock()
		app.sessionCompany = string(scope)
		app.mu.Unlock()
	}

	return app, nil
}

func (a *App) Config() *config.Config { return a.config }
func (a *App) Store() Store           { return a.store }
func (a *App) View() *View            { return a.view }
func (a *App) Capture() *Capture      { return a.capture }
func (a *App) Engine() *Engine        { return a.engine }
func (a *App) Observer() *Observer    { return a.observer }
func (a *App) Gateway() Gateway       { return a.gateway }

// StorageWarning is non-empty while the in-memory fallback store is in use.
func (a *App) StorageWarning() string {
	return a.storageWarning
}

// Scope resolves the tenant every new record belongs to: explicit config
// first, then the scope bound to the session at login. Empty means
// unresolved, which blocks new captures.
func (a *App) Scope() string {
	if a.config.CompanyID != "" {
		return a.config.CompanyID
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionCompany
}

func (a *App) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// Login authenticates against the gateway and persists the session token
// and its tenant scope for later runs.
func (a *App) Login(ctx context.Context, login, password string) error {
	token, companyID, err := a.gateway.Login(ctx, login, password)
	if err != nil {
		return err
	}

	a.gateway.SetToken(token)

	a.mu.Lock()
	a.authenticated = true
	a.sessionCompany = companyID
	a.mu.Unlock()

	if err := os.WriteFile(a.config.TokenPath, []byte(token), 0600); err != nil {
		a.log.Warn("failed to persist token", "error", err)
	}
	if companyID != "" {
		if err := os.WriteFile(a.scopePath(), []byte(companyID), 0600); err != nil {
			a.log.Warn("failed to persist company scope", "error", err)
		}
	}
	return nil
}

func (a *App) Register(ctx context.Context, login, password, companyID string) error {
	return a.gateway.Register(ctx, login, password, companyID)
}

func (a *App) Logout() {
	a.gateway.SetToken("")
	a.mu.Lock()
	a.authenticated = false
	a.mu.Unlock()
	os.Remove(a.config.TokenPath)
}

// CheckConnection probes the gateway and records the observed state.
func (a *App) CheckConnection(ctx context.Context) error {
	err := a.gateway.Health(ctx)
	a.observer.SetOnline(err == nil)
	return err
}

// SetConnectivity feeds the observer's event source. CLI flags and the
// health probe both push edges through here.
func (a *App) SetConnectivity(online bool) {
	select {
	case a.events <- online:
	default:
		a.log.Warn("connectivity event dropped, channel full")
	}
}

// Watch runs the observer loop until ctx is done, draining every kind on
// each recovery.
func (a *App) Watch(ctx context.Context) {
	a.observer.Watch(ctx, func(ctx context.Context) {
		a.engine.SyncEverything(ctx)
	})
}

// RefreshCompanies fetches the tenant list and replaces the offline
// lookup cache.
func (a *App) RefreshCompanies(ctx context.Context) ([]company.Company, error) {
	companies, err := a.gateway.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(companies); err == nil {
		if err := a.store.SaveLookupSet(companiesLookup, data); err != nil {
			a.log.Warn("failed to cache company list", "error", err)
		}
	}
	return companies, nil
}

// Companies returns the tenant list, from the gateway when reachable and
// from the offline cache otherwise. An unreadable cache yields an empty
// list, never an error.
func (a *App) Companies(ctx context.Context) []company.Company {
	if a.observer.Online() {
		if companies, err := a.RefreshCompanies(ctx); err == nil {
			return companies
		}
	}

	var companies []company.Company
	if data := a.store.GetLookupSet(companiesLookup); data != nil {
		if err := json.Unmarshal(data, &companies); err != nil {
			a.log.Warn("company cache corrupt", "error", err)
			return nil
		}
	}
	return companies
}

// Discard drops a queued record that the user gave up on.
func (a *App) Discard(kind pending.Kind, tempID string) error {
	return a.store.Remove(kind, tempID)
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) loadToken() (string, error) {
	data, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *App) scopePath() string {
	return a.config.TokenPath + ".scope"
}
