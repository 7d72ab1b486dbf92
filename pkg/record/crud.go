package record

import (
	"minibase/pkg/buffer"
	"minibase/pkg/storage"
)

// insertOnPage writes data into the first free slot of pv, returning its
// index, or false if pv has no free slot.
func insertOnPage(pv pageView, recordSize int, data []byte) (int, bool) {
	n := int(pv.NumSlots())
	for i := 0; i < n; i++ {
		if !pv.SlotUsed(i) {
			copy(pv.TupleAt(i, recordSize), data)
			pv.SetSlotUsed(i, true)
			return i, true
		}
	}
	return -1, false
}

// Insert places data into the first available slot in the table's page
// chain, allocating a new overflow page if every existing page is full.
func (t *Table) Insert(data []byte) (RID, error) {
	recordSize := t.schema.RecordSize()
	if len(data) != recordSize {
		return RID{}, ErrRecordSizeMismatch
	}

	mainPV := pageView{data: t.handle.Data}
	if slot, ok := insertOnPage(mainPV, recordSize, data); ok {
		if err := t.session.pool.MarkDirty(t.mainPage); err != nil {
			return RID{}, err
		}
		rid := RID{Page: t.mainPage, Slot: int32(slot)}
		if err := t.bumpNumTuples(1); err != nil {
			return RID{}, err
		}
		return rid, nil
	}

	prevPage := t.mainPage
	pageNum := mainPV.NextPage()
	for pageNum != storage.NoPage {
		var rid RID
		found := false
		err := t.session.withPage(pageNum, func(h *buffer.PageHandle) error {
			opv := pageView{data: h.Data}
			if slot, ok := insertOnPage(opv, recordSize, data); ok {
				if err := t.session.pool.MarkDirty(pageNum); err != nil {
					return err
				}
				rid = RID{Page: pageNum, Slot: int32(slot)}
				found = true
				return nil
			}
			prevPage = pageNum
			pageNum = opv.NextPage()
			return nil
		})
		if err != nil {
			return RID{}, err
		}
		if found {
			if err := t.bumpNumTuples(1); err != nil {
				return RID{}, err
			}
			return rid, nil
		}
	}

	newPage, err := t.session.getFreePage()
	if err != nil {
		return RID{}, err
	}
	if err := t.session.initNewPage(t, t.schema, newPage); err != nil {
		return RID{}, err
	}

	var rid RID
	err = t.session.withPage(newPage, func(h *buffer.PageHandle) error {
		npv := pageView{data: h.Data}
		slot, ok := insertOnPage(npv, recordSize, data)
		if !ok {
			return ErrWriteFailed
		}
		npv.SetPrevPage(prevPage)
		rid = RID{Page: newPage, Slot: int32(slot)}
		return t.session.pool.MarkDirty(newPage)
	})
	if err != nil {
		return RID{}, err
	}

	if prevPage == t.mainPage {
		mainPV.SetNextPage(newPage)
		if err := t.session.pool.MarkDirty(t.mainPage); err != nil {
			return RID{}, err
		}
	} else {
		err = t.session.withPage(prevPage, func(h *buffer.PageHandle) error {
			pageView{data: h.Data}.SetNextPage(newPage)
			return t.session.pool.MarkDirty(prevPage)
		})
		if err != nil {
			return RID{}, err
		}
	}

	if err := t.bumpNumTuples(1); err != nil {
		return RID{}, err
	}
	return rid, nil
}

// Delete clears id's slot, failing if it is out of range or already
// free. Tuple bytes are left untouched.
func (t *Table) Delete(id RID) error {
	err := t.withTablePage(id.Page, func(pv pageView) error {
		if id.Slot < 0 || int(id.Slot) >= int(pv.NumSlots()) {
			return ErrSlotOutOfRange
		}
		if !pv.SlotUsed(int(id.Slot)) {
			return ErrSlotEmpty
		}
		pv.SetSlotUsed(int(id.Slot), false)
		return t.session.pool.MarkDirty(id.Page)
	})
	if err != nil {
		return err
	}
	return t.bumpNumTuples(-1)
}

// Update overwrites id's payload bytes, failing if it is out of range or
// free.
func (t *Table) Update(id RID, data []byte) error {
	recordSize := t.schema.RecordSize()
	if len(data) != recordSize {
		return ErrRecordSizeMismatch
	}
	return t.withTablePage(id.Page, func(pv pageView) error {
		if id.Slot < 0 || int(id.Slot) >= int(pv.NumSlots()) {
			return ErrSlotOutOfRange
		}
		if !pv.SlotUsed(int(id.Slot)) {
			return ErrSlotEmpty
		}
		copy(pv.TupleAt(int(id.Slot), recordSize), data)
		return t.session.pool.MarkDirty(id.Page)
	})
}

// Get returns a copy of id's record, failing if it is out of range or
// free.
func (t *Table) Get(id RID) (*Record, error) {
	recordSize := t.schema.RecordSize()
	rec := &Record{ID: id, Data: make([]byte, recordSize)}
	err := t.withTablePage(id.Page, func(pv pageView) error {
		if id.Slot < 0 || int(id.Slot) >= int(pv.NumSlots()) {
			return ErrSlotOutOfRange
		}
		if !pv.SlotUsed(int(id.Slot)) {
			return ErrSlotEmpty
		}
		copy(rec.Data, pv.TupleAt(int(id.Slot), recordSize))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}
