package conversion

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/amirasaad/fxcalc/pkg/currency"
	"github.com/amirasaad/fxcalc/pkg/repository/preferences"
	ratessvc "github.com/amirasaad/fxcalc/pkg/service/rates"
)

// Manager owns one Store per session. Stores are created on first use,
// hydrated from persisted layout preferences, and wired to persist layout
// changes back. There are no global store instances; everything reachable
// from handlers flows through an injected Manager.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store

	svc      *ratessvc.Service
	registry *currency.Registry
	prefs    preferences.Repository
	logger   *slog.Logger
}

// NewManager creates a session store manager.
func NewManager(svc *ratessvc.Service, registry *currency.Registry, prefs preferences.Repository, logger *slog.Logger) *Manager {
	return &Manager{
		stores:   make(map[string]*Store),
		svc:      svc,
		registry: registry,
		prefs:    prefs,
		logger:   logger,
	}
}

// GetOrCreate returns the session's store, creating and hydrating it on
// first use. Creation never fails: a broken preferences read just falls
// back to the default layout.
func (m *Manager) GetOrCreate(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	if store, ok := m.stores[sessionID]; ok {
		m.mu.Unlock()
		return store
	}
	m.mu.Unlock()

	var codes []string
	var baseCode string
	layout, err := m.prefs.Get(ctx, sessionID)
	if err != nil {
		m.logger.Warn("failed to load layout preferences", "session", sessionID, "error", err)
	}
	if layout != nil {
		codes = layout.Codes
		baseCode = layout.BaseCode
	}

	store := NewStore(m.svc, m.registry, codes, baseCode, m.logger)
	store.Subscribe(m.persister(sessionID, layoutSignature(store.State())))

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[sessionID]; ok {
		// Another request created the store while we were hydrating.
		return existing
	}
	m.stores[sessionID] = store
	return store
}

// layoutSignature folds the layout-relevant parts of a state into a
// comparable string.
func layoutSignature(st State) string {
	codes := make([]string, len(st.Rows))
	for i, row := range st.Rows {
		codes[i] = row.Code
	}
	return strings.Join(codes, ",") + "|" + st.BaseCode
}

// persister saves the session's layout whenever the row set or base
// changes. Input and rate updates leave the layout signature untouched and
// are skipped; the input string is never persisted.
func (m *Manager) persister(sessionID, initialSig string) func(State) {
	var mu sync.Mutex
	lastSig := initialSig
	return func(st State) {
		sig := layoutSignature(st)

		mu.Lock()
		if sig == lastSig {
			mu.Unlock()
			return
		}
		lastSig = sig
		mu.Unlock()

		codes := make([]string, len(st.Rows))
		for i, row := range st.Rows {
			codes[i] = row.Code
		}
		layout := preferences.Layout{
			SessionID: sessionID,
			Codes:     codes,
			BaseCode:  st.BaseCode,
		}
		// A failed save must never surface to the keypad flow.
		if err := m.prefs.Save(context.Background(), layout); err != nil {
			m.logger.Warn("failed to save layout preferences", "session", sessionID, "error", err)
		}
	}
}
