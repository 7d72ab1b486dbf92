package record

import "errors"

// Errors returned by the record manager. ErrNoMoreTuples corresponds to
// the original RM_NO_MORE_TUPLES status code and ErrWriteFailed to
// WRITE_FAILED; the others are finer-grained failures with no single
// counterpart in that taxonomy.
var (
	ErrTableExists        = errors.New("record: table already exists")
	ErrTableNotFound      = errors.New("record: table not found")
	ErrTableOpen          = errors.New("record: table already open")
	ErrTooManyTables      = errors.New("record: catalog is full")
	ErrTooManyAttrs       = errors.New("record: too many attributes")
	ErrTooManyKeys        = errors.New("record: too many key attributes")
	ErrSchemaTooLarge     = errors.New("record: schema leaves no room for records on a page")
	ErrRecordSizeMismatch = errors.New("record: record size does not match schema")
	ErrSlotOutOfRange     = errors.New("record: slot index out of range")
	ErrSlotEmpty          = errors.New("record: slot is not occupied")
	ErrNoMoreTuples       = errors.New("record: no more tuples")
	ErrAttrOutOfRange     = errors.New("record: attribute index out of range")
	ErrWriteFailed        = errors.New("record: write failed")
)
