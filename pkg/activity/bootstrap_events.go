package activity

import (
	"strings"
	"time"
)

const (
	VerbModuleRegistered = "jsmodules.module.registered"
	VerbScriptEvaluated  = "jsmodules.script.evaluated"
	VerbBootstrapFailed  = "jsmodules.bootstrap.failed"

	ObjectTypeModule    = "jsmodules.module"
	ObjectTypeScript    = "jsmodules.script"
	ObjectTypeBootstrap = "jsmodules.bootstrap"
)

// BootstrapEventInput describes the common fields for bootstrap events.
type BootstrapEventInput struct {
	RunID      string
	ActorID    string
	TenantID   string
	Channel    string
	Name       string
	Path       string
	Units      int
	Err        error
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildModuleRegisteredEvent records a nested-tier module becoming importable.
func BuildModuleRegisteredEvent(input BootstrapEventInput) Event {
	return buildBootstrapEvent(VerbModuleRegistered, ObjectTypeModule, input.Name, input)
}

// BuildScriptEvaluatedEvent records a global-tier script that ran.
func BuildScriptEvaluatedEvent(input BootstrapEventInput) Event {
	return buildBootstrapEvent(VerbScriptEvaluated, ObjectTypeScript, input.Name, input)
}

// BuildBootstrapFailedEvent records an aborted bootstrap run. The object ID is
// the run ID.
func BuildBootstrapFailedEvent(input BootstrapEventInput) Event {
	event := buildBootstrapEvent(VerbBootstrapFailed, ObjectTypeBootstrap, input.RunID, input)
	event.Metadata = ensureMetadata(event.Metadata)
	event.Metadata["units"] = input.Units
	if input.Name != "" {
		event.Metadata["name"] = input.Name
	}
	if input.Err != nil {
		event.Metadata["error"] = input.Err.Error()
	}
	return event
}

func buildBootstrapEvent(verb, objectType, objectID string, input BootstrapEventInput) Event {
	metadata := CloneMetadata(input.Metadata)
	if input.RunID != "" {
		metadata = ensureMetadata(metadata)
		metadata["run_id"] = input.RunID
	}
	if input.Path != "" {
		metadata = ensureMetadata(metadata)
		metadata["path"] = input.Path
	}

	objectID = strings.TrimSpace(objectID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.Path)
	}
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
