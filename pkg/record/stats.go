package record

import (
	"minibase/pkg/buffer"
	"minibase/pkg/storage"
)

// NumPages returns the total number of pages in the page file, as
// recorded in the catalog.
func (s *Session) NumPages() storage.PageNum {
	return s.catalogView().TotalNumPages()
}

// NumTables returns the number of tables currently in the catalog.
func (s *Session) NumTables() int32 {
	return s.catalogView().NumTables()
}

// NumFreePages walks the free-page list and returns its length.
func (s *Session) NumFreePages() (int, error) {
	cur := s.catalogView().FreePage()
	if cur == storage.NoPage {
		return 0, nil
	}
	count := 1
	for {
		var next storage.PageNum
		err := s.withPage(cur, func(h *buffer.PageHandle) error {
			next = pageView{data: h.Data}.NextPage()
			return nil
		})
		if err != nil {
			return 0, err
		}
		if next == storage.NoPage {
			return count, nil
		}
		cur = next
		count++
	}
}

// NumTuples returns the number of live records in t, as tracked in the
// catalog.
func (t *Table) NumTuples() (int32, error) {
	_, td := t.session.findTable(t.name)
	if td == nil {
		return 0, ErrTableNotFound
	}
	return td.NumTuples(), nil
}
