package azam

import (
	"database/sql"
	"database/sql/driver"

	"github.com/cockroachdb/errors"
)

// IDs are written to the database as the int64 with the same bit pattern,
// so IDs above math.MaxInt64 are stored as negative numbers. Text columns,
// such as the output of the postgres package's <prefix>_encode, are read as
// exactly one azam section.

var (
	_ driver.Valuer = ID(0)
	_ sql.Scanner   = (*ID)(nil)
	_ driver.Valuer = NullID{}
	_ sql.Scanner   = (*NullID)(nil)
)

// Value implements driver.Valuer.
func (id ID) Value() (driver.Value, error) {
	return int64(id), nil
}

// Scan implements sql.Scanner. NULL scans as Nil.
func (id *ID) Scan(src any) error {
	v, _, err := scanID(src)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// NullID is an ID column that may be NULL.
type NullID struct {
	ID    ID
	Valid bool // Valid is true if ID is not NULL
}

// Value implements driver.Valuer.
func (n NullID) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.ID.Value()
}

// Scan implements sql.Scanner. A failed scan leaves n NULL.
func (n *NullID) Scan(src any) error {
	id, ok, err := scanID(src)
	if err != nil {
		*n = NullID{}
		return err
	}
	*n = NullID{ID: id, Valid: ok}
	return nil
}

// MarshalJSON writes null or the ID's section string.
func (n NullID) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.ID.MarshalJSON()
}

func (n *NullID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullID{}
		return nil
	}
	var id ID
	if err := id.UnmarshalJSON(b); err != nil {
		*n = NullID{}
		return err
	}
	*n = NullID{ID: id, Valid: true}
	return nil
}

// scanID converts a driver value. The second result is false for NULL.
func scanID(src any) (ID, bool, error) {
	var text string
	switch v := src.(type) {
	case nil:
		return Nil, false, nil
	case ID:
		return v, true, nil
	case int64:
		return ID(v), true, nil
	case []byte:
		text = string(v)
	case string:
		text = v
	default:
		return Nil, false, errors.Newf("azam: cannot scan %T", src)
	}
	id, err := Parse(text)
	if err != nil {
		return Nil, false, errors.Wrapf(err, "scan %q", text)
	}
	return id, true, nil
}
