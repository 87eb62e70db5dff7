package activity

import (
	"context"
	"errors"
	"testing"
)

func TestBuildModuleRegisteredEvent(t *testing.T) {
	meta := map[string]any{"custom": "value"}
	event := BuildModuleRegisteredEvent(BootstrapEventInput{
		RunID:    "run-1",
		ActorID:  " host ",
		Name:     "jsmodule_event",
		Path:     "modules/event.js",
		Metadata: meta,
	})

	if event.Verb != VerbModuleRegistered || event.ObjectType != ObjectTypeModule {
		t.Fatalf("unexpected verb/object type: %+v", event)
	}
	if event.ObjectID != "jsmodule_event" {
		t.Fatalf("expected specifier as object id, got %q", event.ObjectID)
	}
	if event.ActorID != "host" {
		t.Fatalf("expected trimmed actor, got %q", event.ActorID)
	}
	if event.Metadata["run_id"] != "run-1" || event.Metadata["path"] != "modules/event.js" {
		t.Fatalf("expected run/path metadata, got %+v", event.Metadata)
	}
	if _, ok := meta["run_id"]; ok {
		t.Fatalf("expected input metadata untouched")
	}
}

func TestBuildScriptEvaluatedEventFallsBackToPath(t *testing.T) {
	event := BuildScriptEvaluatedEvent(BootstrapEventInput{Path: "globals.js"})
	if event.Verb != VerbScriptEvaluated || event.ObjectID != "globals.js" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if got := BuildScriptEvaluatedEvent(BootstrapEventInput{}); got.ObjectID != ObjectTypeScript {
		t.Fatalf("expected object type fallback, got %q", got.ObjectID)
	}
}

func TestBuildBootstrapFailedEvent(t *testing.T) {
	event := BuildBootstrapFailedEvent(BootstrapEventInput{
		RunID: "run-9",
		Name:  "jsmodule_x",
		Units: 2,
		Err:   errors.New("boom"),
	})
	if event.Verb != VerbBootstrapFailed || event.ObjectType != ObjectTypeBootstrap || event.ObjectID != "run-9" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Metadata["units"] != 2 || event.Metadata["error"] != "boom" || event.Metadata["name"] != "jsmodule_x" {
		t.Fatalf("unexpected metadata: %+v", event.Metadata)
	}

	capture := &CaptureHook{}
	if err := (Hooks{capture}).Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if verbs := capture.Verbs(); len(verbs) != 1 || verbs[0] != VerbBootstrapFailed {
		t.Fatalf("unexpected captured verbs: %v", verbs)
	}
}
