package record

import (
	"encoding/binary"
	"math"

	"minibase/pkg/storage"
)

// RID identifies a record's storage location: a page and a slot index
// within that page.
type RID struct {
	Page storage.PageNum
	Slot int32
}

// Record is a row's flat packed byte buffer plus its storage location.
type Record struct {
	ID   RID
	Data []byte
}

// NewRecord allocates a zeroed record buffer sized for schema.
func NewRecord(schema *Schema) *Record {
	return &Record{Data: make([]byte, schema.RecordSize())}
}

func attrField(schema *Schema, rec *Record, attrNum int) ([]byte, Attr, error) {
	if attrNum < 0 || attrNum >= len(schema.Attrs) {
		return nil, Attr{}, ErrAttrOutOfRange
	}
	a := schema.Attrs[attrNum]
	offset := schema.attrOffset(attrNum)
	size := AttrSize(a)
	return rec.Data[offset : offset+size], a, nil
}

// GetInt reads attrNum as a TypeInt value.
func GetInt(schema *Schema, rec *Record, attrNum int) (int32, error) {
	field, _, err := attrField(schema, rec, attrNum)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(field)), nil
}

// SetInt writes v into attrNum as a TypeInt value.
func SetInt(schema *Schema, rec *Record, attrNum int, v int32) error {
	field, _, err := attrField(schema, rec, attrNum)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(field, uint32(v))
	return nil
}

// GetFloat reads attrNum as a TypeFloat value.
func GetFloat(schema *Schema, rec *Record, attrNum int) (float32, error) {
	field, _, err := attrField(schema, rec, attrNum)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(field)), nil
}

// SetFloat writes v into attrNum as a TypeFloat value.
func SetFloat(schema *Schema, rec *Record, attrNum int, v float32) error {
	field, _, err := attrField(schema, rec, attrNum)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(field, math.Float32bits(v))
	return nil
}

// GetBool reads attrNum as a TypeBool value.
func GetBool(schema *Schema, rec *Record, attrNum int) (bool, error) {
	field, _, err := attrField(schema, rec, attrNum)
	if err != nil {
		return false, err
	}
	return field[0] != 0, nil
}

// SetBool writes v into attrNum as a TypeBool value.
func SetBool(schema *Schema, rec *Record, attrNum int, v bool) error {
	field, _, err := attrField(schema, rec, attrNum)
	if err != nil {
		return err
	}
	if v {
		field[0] = 1
	} else {
		field[0] = 0
	}
	return nil
}

// GetString reads attrNum as a TypeString value, trimming the trailing
// NUL padding.
func GetString(schema *Schema, rec *Record, attrNum int) (string, error) {
	field, _, err := attrField(schema, rec, attrNum)
	if err != nil {
		return "", err
	}
	end := len(field)
	for end > 0 && field[end-1] == 0 {
		end--
	}
	return string(field[:end]), nil
}

// SetString writes v into attrNum as a TypeString value, truncating to
// the attribute's Length if necessary and NUL-padding the remainder.
func SetString(schema *Schema, rec *Record, attrNum int, v string) error {
	field, _, err := attrField(schema, rec, attrNum)
	if err != nil {
		return err
	}
	n := copy(field[:len(field)-1], v)
	for i := n; i < len(field); i++ {
		field[i] = 0
	}
	return nil
}
