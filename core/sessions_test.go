package routing

import (
	"context"
	"testing"

	"github.com/nebulavoice/translate-core/core/events"
)

func TestRegistryOpenAndGet(t *testing.T) {
	registry := NewRegistry()
	ctx := context.Background()
	defer registry.CloseAll(ctx)

	controller := registry.Open(ctx, "session-a")
	if controller == nil {
		t.Fatalf("expected controller")
	}

	got, ok := registry.Get("session-a")
	if !ok || got != controller {
		t.Fatalf("expected to retrieve the opened controller")
	}
	if registry.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", registry.Len())
	}
}

func TestRegistryOpenGeneratesID(t *testing.T) {
	registry := NewRegistry()
	ctx := context.Background()
	defer registry.CloseAll(ctx)

	controller := registry.Open(ctx, "")
	if controller.SessionID() == "" {
		t.Fatalf("expected generated session id")
	}
	if _, ok := registry.Get(controller.SessionID()); !ok {
		t.Fatalf("generated session must be retrievable")
	}
}

func TestRegistryOpenIsIdempotentPerID(t *testing.T) {
	registry := NewRegistry()
	ctx := context.Background()
	defer registry.CloseAll(ctx)

	first := registry.Open(ctx, "session-a")
	second := registry.Open(ctx, "session-a")

	if first != second {
		t.Fatalf("reopening a live session must return the existing controller")
	}
	if registry.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", registry.Len())
	}
}

func TestRegistryClose(t *testing.T) {
	registry := NewRegistry()
	ctx := context.Background()

	controller := registry.Open(ctx, "session-a")
	registry.Close(ctx, "session-a")

	if registry.Len() != 0 {
		t.Fatalf("expected no live sessions, got %d", registry.Len())
	}
	if controller.Submit(events.NewManualPressed()) {
		t.Fatalf("closed controller must reject submissions")
	}

	// Closing an unknown session is a no-op.
	registry.Close(ctx, "session-a")
	registry.Close(ctx, "never-opened")
}

func TestRegistryCloseAll(t *testing.T) {
	registry := NewRegistry()
	ctx := context.Background()

	first := registry.Open(ctx, "session-a")
	second := registry.Open(ctx, "session-b")

	registry.CloseAll(ctx)

	if registry.Len() != 0 {
		t.Fatalf("expected no live sessions, got %d", registry.Len())
	}
	for _, controller := range []*Controller{first, second} {
		if controller.Submit(events.NewManualPressed()) {
			t.Fatalf("closed controller must reject submissions")
		}
	}
}
