package record

import "minibase/pkg/storage"

// Predicate filters records during a scan.
type Predicate interface {
	Eval(schema *Schema, rec *Record) (bool, error)
}

// Scan is a sequential cursor over a table's page chain.
type Scan struct {
	table *Table
	page  storage.PageNum
	slot  int32
	cond  Predicate
}

// StartScan initializes a cursor over t's page chain, optionally
// filtered by cond. A nil cond matches every record.
func (t *Table) StartScan(cond Predicate) *Scan {
	return &Scan{table: t, page: t.mainPage, slot: -1, cond: cond}
}

// Next advances the cursor and returns the next matching record, or
// ErrNoMoreTuples once the chain is exhausted.
func (s *Scan) Next() (*Record, error) {
	s.slot++
	for {
		if s.page == storage.NoPage {
			return nil, ErrNoMoreTuples
		}

		rec, foundSlot, found, err := s.scanPage(s.page, s.slot)
		if err != nil {
			return nil, err
		}
		if found {
			s.slot = foundSlot
			return rec, nil
		}

		var next storage.PageNum
		err = s.table.withTablePage(s.page, func(pv pageView) error {
			next = pv.NextPage()
			return nil
		})
		if err != nil {
			return nil, err
		}
		s.page = next
		s.slot = 0
	}
}

// scanPage walks page's slots starting at startSlot, returning the first
// record matching the scan's predicate.
func (s *Scan) scanPage(page storage.PageNum, startSlot int32) (*Record, int32, bool, error) {
	var result *Record
	var foundSlot int32 = -1
	recordSize := s.table.schema.RecordSize()

	err := s.table.withTablePage(page, func(pv pageView) error {
		n := int(pv.NumSlots())
		for i := int(startSlot); i < n; i++ {
			if !pv.SlotUsed(i) {
				continue
			}
			rec := &Record{
				ID:   RID{Page: page, Slot: int32(i)},
				Data: append([]byte(nil), pv.TupleAt(i, recordSize)...),
			}
			if s.cond != nil {
				ok, err := s.cond.Eval(s.table.schema, rec)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
			}
			result = rec
			foundSlot = int32(i)
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, 0, false, err
	}
	return result, foundSlot, result != nil, nil
}

// Close releases scan state. No additional pins are held beyond the
// table's main page, which Close does not touch.
func (s *Scan) Close() {
	s.table = nil
	s.cond = nil
}
