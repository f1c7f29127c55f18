package vidgraph

import (
	"strings"

	"github.com/google/uuid"
)

// parseID validates the shape of a raw identifier before any store access.
// The entity kind only names the field in the failure message.
func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, InvalidArgf("invalid %s id", kind)
	}
	return id, nil
}

// requireText trims a required text field and rejects blank values.
func requireText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", InvalidArgf("%s is required", field)
	}
	return trimmed, nil
}
