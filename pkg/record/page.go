package record

import (
	"encoding/binary"

	"minibase/pkg/storage"
)

// Every non-catalog page begins with a 12-byte header, followed by a
// one-byte-per-slot occupancy array, followed by packed fixed-size
// tuples.
//
// Offset  Size  Field
// 0       4     nextPage (int32)
// 4       4     prevPage (int32)
// 8       4     numSlots (int32)
const (
	pageNextOffset     = 0
	pagePrevOffset     = 4
	pageNumSlotsOffset = 8
	pageHeaderSize     = 12
)

// recordsPerPage returns how many fixed-size records of schema's record
// size fit on one page alongside their slot-occupancy bytes.
func recordsPerPage(schema *Schema) int {
	recordSize := schema.RecordSize()
	return (storage.PageSize - pageHeaderSize) / (recordSize + 1)
}

// pageView is a byte-backed view over a page's header, slot array, and
// tuple data.
type pageView struct {
	data []byte
}

func (p pageView) NextPage() storage.PageNum {
	return storage.PageNum(int32(binary.LittleEndian.Uint32(p.data[pageNextOffset:])))
}

func (p pageView) SetNextPage(v storage.PageNum) {
	binary.LittleEndian.PutUint32(p.data[pageNextOffset:], uint32(v))
}

func (p pageView) PrevPage() storage.PageNum {
	return storage.PageNum(int32(binary.LittleEndian.Uint32(p.data[pagePrevOffset:])))
}

func (p pageView) SetPrevPage(v storage.PageNum) {
	binary.LittleEndian.PutUint32(p.data[pagePrevOffset:], uint32(v))
}

func (p pageView) NumSlots() int32 {
	return int32(binary.LittleEndian.Uint32(p.data[pageNumSlotsOffset:]))
}

func (p pageView) SetNumSlots(v int32) {
	binary.LittleEndian.PutUint32(p.data[pageNumSlotsOffset:], uint32(v))
}

func (p pageView) slots() []byte {
	n := int(p.NumSlots())
	return p.data[pageHeaderSize : pageHeaderSize+n]
}

func (p pageView) SlotUsed(i int) bool {
	return p.slots()[i] != 0
}

func (p pageView) SetSlotUsed(i int, used bool) {
	if used {
		p.slots()[i] = 1
	} else {
		p.slots()[i] = 0
	}
}

// TupleAt returns the slice holding the recordSize bytes of slot i.
func (p pageView) TupleAt(i int, recordSize int) []byte {
	start := pageHeaderSize + int(p.NumSlots()) + i*recordSize
	return p.data[start : start+recordSize]
}

// resetSlots sets numSlots and clears every slot to unused.
func (p pageView) resetSlots(numSlots int) {
	p.SetNumSlots(int32(numSlots))
	slots := p.slots()
	for i := range slots {
		slots[i] = 0
	}
}
