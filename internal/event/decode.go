package event

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodePayload returns the event's payload as T. Events published on the
// in-process bus already hold T; events read back from a dead-letter file
// hold generic JSON and are converted.
func DecodePayload[T any](evt Event) (T, error) {
	var result T
	if !schemaCompatible(evt.Version) {
		return result, fmt.Errorf("%s: %q on %s", ErrMsgUnsupportedSchema, evt.Version, evt.Type)
	}
	if v, ok := evt.Payload.(T); ok {
		return v, nil
	}
	if p, ok := evt.Payload.(*T); ok && p != nil {
		return *p, nil
	}

	data, err := json.Marshal(evt.Payload)
	if err != nil {
		return result, fmt.Errorf("%s %s: %w", ErrMsgDecodePayload, evt.Type, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("%s %s: %w", ErrMsgDecodePayload, evt.Type, err)
	}
	return result, nil
}

// schemaCompatible accepts an unset version, which predates versioning
func schemaCompatible(version string) bool {
	if version == "" {
		return true
	}
	major, _, _ := strings.Cut(version, ".")
	current, _, _ := strings.Cut(EventSchemaVersion, ".")
	return major == current
}
