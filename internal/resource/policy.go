package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/ownership"
)

// Operation is a mutating request type.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Requirement is one required field of a payload.
type Requirement[T any] struct {
	Message string
	Present func(T) bool
}

// Kind describes a resource to the policy: its name for the policy table, its
// display title for messages, and the fields a payload must carry.
type Kind[T any] struct {
	Name  string
	Title string
	// Root marks the Store itself. Creating a root needs no ownership and its
	// record id is the store id.
	Root     bool
	Required []Requirement[T]
	// Validate runs after the required fields, e.g. format checks.
	Validate func(T) error
}

// Scope is what a successful check yields to the mutation.
type Scope struct {
	UserID   string
	StoreID  snowflake.ID
	RecordID snowflake.ID
}

// Check validates payload against kind's required fields. The first missing
// field wins.
func (k Kind[T]) Check(payload T) error {
	for _, req := range k.Required {
		if !req.Present(payload) {
			return Invalid(req.Message)
		}
	}
	if k.Validate != nil {
		return k.Validate(payload)
	}
	return nil
}

// Authorize runs the checks guarding every mutation, in a fixed order:
//
//	create: identity, fields, ownership
//	update: identity, fields, ownership, record id
//	delete: identity, ownership, record id
//
// For a Root kind create skips ownership and update/delete take the record id
// from storeID. A record id that cannot name a record yields NotFound.
func Authorize[T any](ctx context.Context, guard ownership.Guard, kind Kind[T], op Operation, userID, storeID, recordID string, payload T) (Scope, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Scope{}, ErrUnauthenticated
	}
	scope := Scope{UserID: userID}

	if op != OpDelete {
		if err := kind.Check(payload); err != nil {
			return Scope{}, err
		}
	}

	if kind.Root && op == OpCreate {
		return scope, nil
	}

	outcome, err := guard.AuthorizeAction(ctx, userID, storeID, kind.Name, string(op))
	if err != nil {
		return Scope{}, fmt.Errorf("authorize %s %s: %w", op, kind.Name, err)
	}
	switch outcome {
	case ownership.Authorized:
	case ownership.Unauthenticated:
		return Scope{}, ErrUnauthenticated
	default:
		return Scope{}, ErrForbidden
	}

	// The guard only authorizes well-formed store ids.
	scope.StoreID, _ = snowflake.ParseString(strings.TrimSpace(storeID))

	if kind.Root {
		scope.RecordID = scope.StoreID
		return scope, nil
	}

	if op == OpCreate {
		return scope, nil
	}

	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return Scope{}, Invalid(kind.Title + " ID is required")
	}
	id, err := ParseID(recordID)
	if err != nil {
		return Scope{}, NotFound(kind.Title)
	}
	scope.RecordID = id
	return scope, nil
}

// ParseID parses a decimal snowflake id. Zero and negative ids are rejected.
func ParseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// Text reports whether s has non-space content.
func Text(s string) bool {
	return strings.TrimSpace(s) != ""
}
