package catalog

import (
	"context"
	"path/filepath"
	"testing"
)

func TestExportRoundTrip(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		sd, err := DefaultSeed()
		if err != nil {
			t.Fatal(err)
		}
		if _, err := sd.Apply(ctx, s); err != nil {
			t.Fatal(err)
		}

		exported, err := Export(ctx, s)
		if err != nil {
			t.Fatalf("Export: %v", err)
		}
		path := filepath.Join(t.TempDir(), "menu.yaml")
		if err := exported.WriteFile(path); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		loaded, err := LoadSeed(path)
		if err != nil {
			t.Fatalf("LoadSeed: %v", err)
		}
		fresh := NewMemoryStore()
		if _, err := loaded.Apply(ctx, fresh); err != nil {
			t.Fatalf("Apply: %v", err)
		}

		want, _ := s.List(ctx)
		got, _ := fresh.List(ctx)
		if len(got) != len(want) {
			t.Fatalf("got %d entries, want %d", len(got), len(want))
		}
		for i := range want {
			w, g := want[i], got[i]
			if g.Name != w.Name || g.Price != w.Price || g.Category != w.Category || g.Available != w.Available {
				t.Errorf("entry %d = %+v, want %+v", i, g, w)
			}
			if g.ID == w.ID {
				t.Errorf("entry %d kept id %s", i, g.ID)
			}
		}
	})
}
