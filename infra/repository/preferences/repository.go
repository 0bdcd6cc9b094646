package preferences

import (
	"context"
	"errors"
	"strings"
	"sync"

	repo "github.com/amirasaad/fxcalc/pkg/repository/preferences"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a layout preferences repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Migrate creates the layout_preferences table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Layout{})
}

// Get implements preferences.Repository.
func (r *repository) Get(ctx context.Context, sessionID string) (*repo.Layout, error) {
	var row Layout
	err := r.db.WithContext(ctx).First(&row, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapModelToLayout(&row), nil
}

// Save implements preferences.Repository.
func (r *repository) Save(ctx context.Context, layout repo.Layout) error {
	row := mapLayoutToModel(layout)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

func mapModelToLayout(row *Layout) *repo.Layout {
	var codes []string
	if row.Codes != "" {
		codes = strings.Split(row.Codes, ",")
	}
	return &repo.Layout{
		SessionID: row.SessionID,
		Codes:     codes,
		BaseCode:  row.BaseCode,
	}
}

func mapLayoutToModel(layout repo.Layout) Layout {
	return Layout{
		SessionID: layout.SessionID,
		Codes:     strings.Join(layout.Codes, ","),
		BaseCode:  layout.BaseCode,
	}
}

// MemoryRepository is an in-process preferences store used in tests and
// when no database is configured; layouts then last only for the process
// lifetime.
type MemoryRepository struct {
	mu      sync.RWMutex
	layouts map[string]repo.Layout
}

// NewMemory creates an empty in-memory preferences repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{layouts: make(map[string]repo.Layout)}
}

// Get implements preferences.Repository.
func (m *MemoryRepository) Get(_ context.Context, sessionID string) (*repo.Layout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	layout, ok := m.layouts[sessionID]
	if !ok {
		return nil, nil
	}
	out := layout
	out.Codes = append([]string(nil), layout.Codes...)
	return &out, nil
}

// Save implements preferences.Repository.
func (m *MemoryRepository) Save(_ context.Context, layout repo.Layout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	layout.Codes = append([]string(nil), layout.Codes...)
	m.layouts[layout.SessionID] = layout
	return nil
}
