package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/audio-director/graph"
)

type record struct {
	Name  string  `toml:"name"`
	Value float64 `toml:"value"`
}

func TestMemoryStoreCRUD(t *testing.T) {
	s := NewMemoryStore[record]()

	if err := s.Put("a", record{Name: "first", Value: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put("b", record{Name: "second", Value: 2}); err != nil {
		t.Fatalf("put: %v", err)
	}

	ids, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("list order: %v", ids)
	}

	got, err := s.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "first" {
		t.Errorf("get: %+v", got)
	}

	if err := s.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete("a"); err != nil {
		t.Errorf("deleting a missing id should be a no-op, got %v", err)
	}
}

func TestMemoryStorePutReplaces(t *testing.T) {
	s := NewMemoryStore[record]()
	s.Put("a", record{Value: 1})
	s.Put("a", record{Value: 2})

	got, _ := s.Get("a")
	if got.Value != 2 {
		t.Errorf("replace: %+v", got)
	}
	ids, _ := s.List()
	if len(ids) != 1 {
		t.Errorf("replace should not duplicate ids: %v", ids)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore[record](filepath.Join(t.TempDir(), "records"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	in := record{Name: "snapshot", Value: 0.75}
	if err := s.Put("session", in); err != nil {
		t.Fatalf("put: %v", err)
	}

	out, err := s.Get("session")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v vs %+v", out, in)
	}

	ids, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0] != "session" {
		t.Errorf("list: %v", ids)
	}
}

func TestFileStoreMissingRecord(t *testing.T) {
	s, err := NewFileStore[record](t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete("nope"); err != nil {
		t.Errorf("deleting a missing record should be a no-op, got %v", err)
	}
}

func TestFileStorePersistsGraphDefinitions(t *testing.T) {
	s, err := NewFileStore[graph.StateGraph](t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	g := graph.StateGraph{
		ID: "combat",
		States: []graph.AudioState{
			{ID: "exploration", IsInitial: true},
			{ID: "combat_low"},
		},
		Transitions: []graph.StateTransition{
			{ID: "t1", From: "exploration", To: "combat_low", DurationMs: 400},
		},
		Parameters: []graph.GraphParameter{
			{Name: "threat", Type: graph.ParamNumber, Default: 0.0},
		},
	}
	if err := s.Put("combat", g); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get("combat")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.States) != 2 || got.Transitions[0].DurationMs != 400 {
		t.Errorf("graph did not survive the round trip: %+v", got)
	}
	if got.States[0].ID != "exploration" || !got.States[0].IsInitial {
		t.Errorf("initial state lost: %+v", got.States[0])
	}
}
