package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chepilot/menubot/internal/catalog"
	"github.com/chepilot/menubot/internal/intent"
	"github.com/chepilot/menubot/internal/model"
)

func newSeededEngine(t *testing.T) (*Engine, catalog.Store) {
	t.Helper()
	s := catalog.NewMemoryStore()
	sd, err := catalog.DefaultSeed()
	require.NoError(t, err)
	_, err = sd.Apply(context.Background(), s)
	require.NoError(t, err)
	return New(s, nil), s
}

func list(t *testing.T, s catalog.Store) []model.MenuEntry {
	t.Helper()
	entries, err := s.List(context.Background())
	require.NoError(t, err)
	return entries
}

func TestAddCreatesAvailableEntry(t *testing.T) {
	e, s := newSeededEngine(t)
	before := len(list(t, s))

	r, err := e.Process(context.Background(), "Agregar postre Flan casero $3500")
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, r.Outcome)
	assert.Equal(t, "✅ Agregado: Flan casero - $3.500", r.Text)

	after := list(t, s)
	require.Len(t, after, before+1)
	added := after[len(after)-1]
	assert.Equal(t, "Flan casero", added.Name)
	assert.Equal(t, int64(3500), added.Price)
	assert.Equal(t, "Postres", added.Category)
	assert.True(t, added.Available)
}

func TestAddDuplicateAnyCase(t *testing.T) {
	e, s := newSeededEngine(t)
	ctx := context.Background()

	_, err := e.Process(ctx, "Agregar Pasta Casera $8000")
	require.NoError(t, err)
	count := len(list(t, s))

	r, err := e.Process(ctx, "agregar PASTA CASERA $9000")
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, r.Outcome)
	assert.Equal(t, `El plato "PASTA CASERA" ya existe en el menú.`, r.Text)
	assert.Nil(t, r.Entry)

	entries := list(t, s)
	assert.Len(t, entries, count)
	pasta, err := s.FindByName(ctx, "pasta casera")
	require.NoError(t, err)
	assert.Equal(t, int64(8000), pasta.Price)
}

func TestSetPriceUpdatesOnlyPrice(t *testing.T) {
	e, s := newSeededEngine(t)
	ctx := context.Background()

	r, err := e.Process(ctx, "Cambiar precio Empanadas $1200")
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, r.Outcome)
	assert.Equal(t, "✅ Precio actualizado: Empanadas (docena) - $1.200", r.Text)

	got, err := s.FindByName(ctx, "Empanadas (docena)")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), got.Price)
	assert.Equal(t, "Entradas", got.Category)
	assert.True(t, got.Available)
}

func TestSetPriceNotFoundLeavesStore(t *testing.T) {
	e, s := newSeededEngine(t)
	before := list(t, s)

	r, err := e.Process(context.Background(), "Cambiar precio Locro $1200")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, r.Outcome)
	assert.Equal(t, `No encontré "Locro" en el menú.`, r.Text)
	assert.Equal(t, before, list(t, s))
}

func TestRemoveNamesStoredEntry(t *testing.T) {
	e, s := newSeededEngine(t)

	r, err := e.Process(context.Background(), "eliminar asado")
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, r.Outcome)
	assert.Equal(t, "✅ Eliminado: Asado de Tira", r.Text)
	require.NotNil(t, r.Entry)
	assert.Equal(t, "Asado de Tira", r.Entry.Name)

	for _, m := range list(t, s) {
		assert.NotEqual(t, "Asado de Tira", m.Name)
	}
}

func TestUnavailableNeverClassifiedAsAvailable(t *testing.T) {
	e, s := newSeededEngine(t)
	ctx := context.Background()

	_, err := e.Process(ctx, "Disponible Pizza Margherita")
	require.NoError(t, err)
	pizza, _ := s.FindByName(ctx, "Pizza Margherita")
	require.True(t, pizza.Available)

	r, err := e.Process(ctx, "No disponible Pizza Margherita")
	require.NoError(t, err)
	assert.Equal(t, "✅ No disponible: Pizza Margherita", r.Text)
	pizza, _ = s.FindByName(ctx, "Pizza Margherita")
	assert.False(t, pizza.Available)
}

func TestAvailableWithPrice(t *testing.T) {
	e, s := newSeededEngine(t)
	ctx := context.Background()

	r, err := e.Process(ctx, "Disponible pizza margherita $7000")
	require.NoError(t, err)
	assert.Equal(t, "✅ Disponible: Pizza Margherita - $7.000", r.Text)

	pizza, _ := s.FindByName(ctx, "Pizza Margherita")
	assert.True(t, pizza.Available)
	assert.Equal(t, int64(7000), pizza.Price)
}

func TestAvailableNeverCreates(t *testing.T) {
	e, s := newSeededEngine(t)
	before := list(t, s)

	r, err := e.Process(context.Background(), "Disponible Pescado del día $15000")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, r.Outcome)
	assert.Equal(t, `No encontré "Pescado del día" en el menú.`, r.Text)
	assert.Equal(t, before, list(t, s))
}

func TestRemoveThenReAddGetsNewID(t *testing.T) {
	e, _ := newSeededEngine(t)
	ctx := context.Background()

	first, err := e.Process(ctx, "Agregar Locro $9000")
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, first.Outcome)

	_, err = e.Process(ctx, "Eliminar Locro")
	require.NoError(t, err)

	second, err := e.Process(ctx, "Agregar Locro $9500")
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, second.Outcome)
	assert.NotEqual(t, first.Entry.ID, second.Entry.ID)
}

func TestUnrecognizedReturnsHelp(t *testing.T) {
	e, s := newSeededEngine(t)
	before := list(t, s)

	r, err := e.Process(context.Background(), "hola, ¿cómo andás?")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnrecognized, r.Outcome)
	assert.Equal(t, HelpText, r.Text)
	assert.Equal(t, before, list(t, s))
}

func TestApplyOnSQLiteStore(t *testing.T) {
	s, err := catalog.NewSQLiteStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	e := New(s, nil)
	ctx := context.Background()

	for _, in := range []string{
		"Agregar bebida Agua $1000",
		"Cambiar precio agua $1100",
		"No disponible agua",
	} {
		r, err := e.Process(ctx, in)
		require.NoError(t, err)
		require.Equal(t, OutcomeApplied, r.Outcome, in)
	}

	agua, err := s.FindByName(ctx, "agua")
	require.NoError(t, err)
	assert.Equal(t, int64(1100), agua.Price)
	assert.Equal(t, "Bebidas", agua.Category)
	assert.False(t, agua.Available)
}

func TestAddLargePriceReplyMatchesStore(t *testing.T) {
	e, s := newSeededEngine(t)
	ctx := context.Background()

	r, err := e.Process(ctx, "Agregar Caviar $9007199254740993")
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, r.Outcome)
	assert.Equal(t, "✅ Agregado: Caviar - $9.007.199.254.740.993", r.Text)

	got, err := s.FindByName(ctx, "Caviar")
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), got.Price)
}

type brokenStore struct{ catalog.Store }

var errBroken = errors.New("disk on fire")

func (brokenStore) List(context.Context) ([]model.MenuEntry, error) { return nil, errBroken }
func (brokenStore) FindByName(context.Context, string) (*model.MenuEntry, error) {
	return nil, errBroken
}

func TestStoreFailureIsAnError(t *testing.T) {
	e := New(brokenStore{}, nil)
	ctx := context.Background()

	_, err := e.Process(ctx, "Eliminar Flan")
	assert.ErrorIs(t, err, errBroken)

	_, err = e.Apply(ctx, intent.Classify("Agregar Flan $10"))
	assert.ErrorIs(t, err, errBroken)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{8500, "8.500"},
		{30000, "30.000"},
		{1234567, "1.234.567"},
		{9007199254740993, "9.007.199.254.740.993"},
		{math.MaxInt64, "9.223.372.036.854.775.807"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
