package provider

import (
	"context"
	"testing"
)

type stubProvider struct {
	name      string
	available bool
}

func (s *stubProvider) Name() string                       { return s.name }
func (s *stubProvider) IsAvailable(_ context.Context) bool { return s.available }

func TestRegistry_CreateAndCache(t *testing.T) {
	reg := NewRegistry[*stubProvider]()
	reg.RegisterFactory("whisper", func(cfg map[string]any) (*stubProvider, error) {
		return &stubProvider{name: "whisper", available: true}, nil
	})

	p, err := reg.Create("whisper", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "whisper" {
		t.Errorf("expected name 'whisper', got %q", p.Name())
	}

	reg.Set("whisper", p)
	cached, ok := reg.Get("whisper")
	if !ok || cached != p {
		t.Error("expected cached instance")
	}
}

func TestRegistry_UnknownFactory(t *testing.T) {
	reg := NewRegistry[*stubProvider]()
	if _, err := reg.Create("missing", nil); err == nil {
		t.Fatal("expected error for unregistered factory")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := NewRegistry[*stubProvider]()
	factory := func(cfg map[string]any) (*stubProvider, error) { return &stubProvider{}, nil }
	reg.RegisterFactory("whisper", factory)
	reg.RegisterFactory("groq", factory)

	names := reg.List()
	if len(names) != 2 || names[0] != "groq" || names[1] != "whisper" {
		t.Fatalf("expected sorted [groq whisper], got %v", names)
	}
}

func TestPrioritySelector(t *testing.T) {
	providers := map[string]*stubProvider{
		"pyannote":  {name: "pyannote", available: false},
		"wholefile": {name: "wholefile", available: true},
	}

	sel := &PrioritySelector[*stubProvider]{Priority: []string{"pyannote", "wholefile"}}
	p, err := sel.Select(context.Background(), providers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "wholefile" {
		t.Errorf("expected fallback to wholefile, got %q", p.Name())
	}
}

func TestPrioritySelector_NoneAvailable(t *testing.T) {
	providers := map[string]*stubProvider{
		"pyannote": {name: "pyannote", available: false},
	}
	sel := &PrioritySelector[*stubProvider]{Priority: []string{"pyannote"}}
	if _, err := sel.Select(context.Background(), providers); err == nil {
		t.Fatal("expected error when nothing is available")
	}
}

func TestHealthCheckSelector(t *testing.T) {
	providers := map[string]*stubProvider{
		"b-unavailable": {name: "b-unavailable", available: false},
		"a-available":   {name: "a-available", available: true},
	}
	sel := &HealthCheckSelector[*stubProvider]{}
	p, err := sel.Select(context.Background(), providers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "a-available" {
		t.Errorf("expected 'a-available', got %q", p.Name())
	}
}

func TestManager_InitializeAndGetByName(t *testing.T) {
	m := NewManager(NewRegistry[*stubProvider](), &HealthCheckSelector[*stubProvider]{})
	m.Register("groq", func(cfg map[string]any) (*stubProvider, error) {
		return &stubProvider{name: "groq", available: true}, nil
	})

	if err := m.Initialize("groq", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := m.GetByName("groq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "groq" {
		t.Errorf("expected 'groq', got %q", p.Name())
	}

	if _, err := m.GetByName("whisper"); err == nil {
		t.Fatal("expected error for uninitialized provider")
	}
}

func TestManager_DefaultWins(t *testing.T) {
	m := NewManager(NewRegistry[*stubProvider](), &HealthCheckSelector[*stubProvider]{})
	m.Register("whisper", func(cfg map[string]any) (*stubProvider, error) {
		return &stubProvider{name: "whisper", available: false}, nil
	})
	if err := m.Initialize("whisper", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.SetDefault("whisper"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Default bypasses the availability check; backend choice is static.
	p, err := m.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "whisper" {
		t.Errorf("expected default 'whisper', got %q", p.Name())
	}
}
