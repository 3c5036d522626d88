package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TaskID identifies one submitted analysis run for its whole lifetime.
type TaskID string

// NewTaskID creates a new unique task identifier using UUID v7 for
// time-ordered generation. Falls back to v4 if v7 is unavailable.
func NewTaskID() TaskID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return TaskID(id.String())
}

// String returns the string representation.
func (id TaskID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty.
func (id TaskID) IsEmpty() bool {
	return id == ""
}

// ParseTaskID parses a string into a TaskID.
func ParseTaskID(s string) (TaskID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("task ID cannot be empty")
	}
	return TaskID(s), nil
}
