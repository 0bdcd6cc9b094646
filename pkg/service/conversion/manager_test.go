package conversion

import (
	"context"
	"testing"
	"time"

	infracache "github.com/amirasaad/fxcalc/infra/cache"
	infraprefs "github.com/amirasaad/fxcalc/infra/repository/preferences"
	"github.com/amirasaad/fxcalc/pkg/currency"
	"github.com/amirasaad/fxcalc/pkg/domain/rates"
	"github.com/amirasaad/fxcalc/pkg/repository/preferences"
	ratessvc "github.com/amirasaad/fxcalc/pkg/service/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(prefs preferences.Repository) *Manager {
	p := &stubProvider{snap: &rates.Snapshot{
		Base:  "USD",
		Date:  "2025-01-02",
		Rates: map[string]float64{"USD": 1, "EUR": 0.9},
	}}
	svc := ratessvc.New(p, infracache.NewMemoryRateCache(), time.Hour, discardLogger())
	return NewManager(svc, currency.NewRegistry(), prefs, discardLogger())
}

func TestManager_DefaultLayoutOnFirstUse(t *testing.T) {
	m := newTestManager(infraprefs.NewMemory())
	store := m.GetOrCreate(context.Background(), "sess-1")

	st := store.State()
	assert.Equal(t, DefaultCodes, rowCodes(st.Rows))
	assert.Equal(t, "USD", st.BaseCode)
	assert.Equal(t, "", st.Input, "input always starts empty")
}

func TestManager_HydratesFromSavedLayout(t *testing.T) {
	prefs := infraprefs.NewMemory()
	require.NoError(t, prefs.Save(context.Background(), preferences.Layout{
		SessionID: "sess-1",
		Codes:     []string{"JPY", "CHF", "USD"},
		BaseCode:  "CHF",
	}))

	m := newTestManager(prefs)
	store := m.GetOrCreate(context.Background(), "sess-1")

	st := store.State()
	assert.Equal(t, []string{"JPY", "CHF", "USD"}, rowCodes(st.Rows))
	assert.Equal(t, "CHF", st.BaseCode)
}

func TestManager_ReturnsSameStorePerSession(t *testing.T) {
	m := newTestManager(infraprefs.NewMemory())
	a := m.GetOrCreate(context.Background(), "sess-1")
	b := m.GetOrCreate(context.Background(), "sess-1")
	c := m.GetOrCreate(context.Background(), "sess-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestManager_PersistsLayoutChangesOnly(t *testing.T) {
	prefs := infraprefs.NewMemory()
	m := newTestManager(prefs)
	ctx := context.Background()
	store := m.GetOrCreate(ctx, "sess-1")

	// Keypad input and rate loads never touch the saved layout.
	store.AppendDigit('7')
	store.LoadRates(ctx)
	layout, err := prefs.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, layout)

	store.AddCurrency("CHF")
	layout, err = prefs.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, layout)
	assert.Contains(t, layout.Codes, "CHF")
	assert.Equal(t, "USD", layout.BaseCode)

	store.SetBaseCurrency("EUR")
	layout, err = prefs.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "EUR", layout.BaseCode)
}
