package record

import (
	"encoding/binary"

	"minibase/pkg/storage"
)

// Catalog layout: page 0 holds a fixed-size header followed by a packed
// array of table descriptors.
//
// Offset  Size  Field
// 0       4     totalNumPages (int32)
// 4       4     freePage (int32)
// 8       4     numTables (int32)
// 12      ...   tables[i], tableDescriptorSize bytes each
const (
	TableNameSize = 20
	AttrNameSize  = 20
	MaxNumAttr    = 8
	MaxNumKeys    = 4

	catalogTotalPagesOffset = 0
	catalogFreePageOffset   = 4
	catalogNumTablesOffset  = 8
	catalogTablesOffset     = 12
	catalogHeaderSize       = 12

	// Table descriptor layout, 276 bytes total.
	tdNameOffset      = 0
	tdNumAttrOffset   = 20
	tdAttrNamesOffset = 24
	tdDataTypesOffset = 184
	tdTypeLenOffset   = 216
	tdKeySizeOffset   = 248
	tdKeyAttrsOffset  = 252
	tdNumTuplesOffset = 268
	tdMainPageOffset  = 272
	tableDescriptorSize = 276
)

// MaxNumTables is computed once so the catalog is guaranteed to fit in
// one page; a non-positive value here would mean PageSize is too small
// to hold even a single table descriptor.
var MaxNumTables = (storage.PageSize - catalogHeaderSize) / tableDescriptorSize

func init() {
	if storage.PageSize < catalogHeaderSize || MaxNumTables <= 0 {
		panic("record: PageSize too small to hold the system catalog")
	}
}

// catalogView is a thin, byte-backed view over the live catalog page.
// Reads and writes go straight through to the pinned page 0 frame; the
// caller is responsible for marking that frame dirty after a write.
type catalogView struct {
	data []byte
}

func (c catalogView) TotalNumPages() storage.PageNum {
	return storage.PageNum(int32(binary.LittleEndian.Uint32(c.data[catalogTotalPagesOffset:])))
}

func (c catalogView) SetTotalNumPages(v storage.PageNum) {
	binary.LittleEndian.PutUint32(c.data[catalogTotalPagesOffset:], uint32(v))
}

func (c catalogView) FreePage() storage.PageNum {
	return storage.PageNum(int32(binary.LittleEndian.Uint32(c.data[catalogFreePageOffset:])))
}

func (c catalogView) SetFreePage(v storage.PageNum) {
	binary.LittleEndian.PutUint32(c.data[catalogFreePageOffset:], uint32(v))
}

func (c catalogView) NumTables() int32 {
	return int32(binary.LittleEndian.Uint32(c.data[catalogNumTablesOffset:]))
}

func (c catalogView) SetNumTables(v int32) {
	binary.LittleEndian.PutUint32(c.data[catalogNumTablesOffset:], uint32(v))
}

// Table returns a view over the i-th table descriptor slot.
func (c catalogView) Table(i int) tableView {
	start := catalogTablesOffset + i*tableDescriptorSize
	return tableView{data: c.data[start : start+tableDescriptorSize]}
}

// tableView is a byte-backed view over one table descriptor.
type tableView struct {
	data []byte
}

func (t tableView) Name() string {
	field := t.data[tdNameOffset : tdNameOffset+TableNameSize]
	end := 0
	for end < len(field) && field[end] != 0 {
		end++
	}
	return string(field[:end])
}

func (t tableView) SetName(name string) {
	field := t.data[tdNameOffset : tdNameOffset+TableNameSize]
	n := copy(field[:len(field)-1], name)
	for i := n; i < len(field); i++ {
		field[i] = 0
	}
}

func (t tableView) NumAttr() int32 {
	return int32(binary.LittleEndian.Uint32(t.data[tdNumAttrOffset:]))
}

func (t tableView) SetNumAttr(v int32) {
	binary.LittleEndian.PutUint32(t.data[tdNumAttrOffset:], uint32(v))
}

func (t tableView) AttrName(i int) string {
	start := tdAttrNamesOffset + i*AttrNameSize
	field := t.data[start : start+AttrNameSize]
	end := 0
	for end < len(field) && field[end] != 0 {
		end++
	}
	return string(field[:end])
}

func (t tableView) SetAttrName(i int, name string) {
	start := tdAttrNamesOffset + i*AttrNameSize
	field := t.data[start : start+AttrNameSize]
	n := copy(field[:len(field)-1], name)
	for j := n; j < len(field); j++ {
		field[j] = 0
	}
}

func (t tableView) DataType(i int) DataType {
	start := tdDataTypesOffset + i*4
	return DataType(int32(binary.LittleEndian.Uint32(t.data[start:])))
}

func (t tableView) SetDataType(i int, dt DataType) {
	start := tdDataTypesOffset + i*4
	binary.LittleEndian.PutUint32(t.data[start:], uint32(dt))
}

func (t tableView) TypeLength(i int) int32 {
	start := tdTypeLenOffset + i*4
	return int32(binary.LittleEndian.Uint32(t.data[start:]))
}

func (t tableView) SetTypeLength(i int, v int32) {
	start := tdTypeLenOffset + i*4
	binary.LittleEndian.PutUint32(t.data[start:], uint32(v))
}

func (t tableView) KeySize() int32 {
	return int32(binary.LittleEndian.Uint32(t.data[tdKeySizeOffset:]))
}

func (t tableView) SetKeySize(v int32) {
	binary.LittleEndian.PutUint32(t.data[tdKeySizeOffset:], uint32(v))
}

func (t tableView) KeyAttr(i int) int32 {
	start := tdKeyAttrsOffset + i*4
	return int32(binary.LittleEndian.Uint32(t.data[start:]))
}

func (t tableView) SetKeyAttr(i int, v int32) {
	start := tdKeyAttrsOffset + i*4
	binary.LittleEndian.PutUint32(t.data[start:], uint32(v))
}

func (t tableView) NumTuples() int32 {
	return int32(binary.LittleEndian.Uint32(t.data[tdNumTuplesOffset:]))
}

func (t tableView) SetNumTuples(v int32) {
	binary.LittleEndian.PutUint32(t.data[tdNumTuplesOffset:], uint32(v))
}

func (t tableView) MainPage() storage.PageNum {
	return storage.PageNum(int32(binary.LittleEndian.Uint32(t.data[tdMainPageOffset:])))
}

func (t tableView) SetMainPage(v storage.PageNum) {
	binary.LittleEndian.PutUint32(t.data[tdMainPageOffset:], uint32(v))
}

// schemaFromDescriptor builds a *Schema from a table descriptor's
// attribute and key arrays. Every field is copied out into fresh slices,
// so the schema does not alias the catalog page's bytes.
func schemaFromDescriptor(td tableView) *Schema {
	numAttr := int(td.NumAttr())
	attrs := make([]Attr, numAttr)
	for i := 0; i < numAttr; i++ {
		attrs[i] = Attr{
			Name:   td.AttrName(i),
			Type:   td.DataType(i),
			Length: int(td.TypeLength(i)),
		}
	}
	keySize := int(td.KeySize())
	keys := make([]int, keySize)
	for i := 0; i < keySize; i++ {
		keys[i] = int(td.KeyAttr(i))
	}
	return NewSchema(attrs, keys)
}
