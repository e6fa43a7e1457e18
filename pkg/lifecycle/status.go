package lifecycle

import "github.com/vendra-hq/vendra-sdk/pkg/serrors"

// Status is the logical-delete lifecycle shared by every association type.
// There are exactly two states and one transition: active rows may become
// deleted, deleted rows are terminal.
type Status string

const (
	Active  Status = "active"
	Deleted Status = "deleted"
)

var (
	ErrAlreadyDeleted = serrors.NewConflict("ALREADY_DELETED", "record is already deleted")
	ErrDeleted        = serrors.NewConflict("RECORD_DELETED", "record is deleted and cannot be modified")
)

func (s Status) Valid() bool {
	return s == Active || s == Deleted
}

// Delete performs the active -> deleted transition. Deleting an already
// deleted record is a Conflict, not a no-op: repeated deletes are an error.
func Delete(s Status) (Status, error) {
	if s == Deleted {
		return s, ErrAlreadyDeleted
	}
	return Deleted, nil
}

// AssertMutable rejects any mutation of a deleted record before field
// changes are applied.
func AssertMutable(s Status) error {
	if s == Deleted {
		return ErrDeleted
	}
	return nil
}
