package record

import (
	"minibase/pkg/buffer"
	"minibase/pkg/storage"
)

// getFreePage returns a page number usable as a fresh chain node, either
// by growing the file or by detaching the head of the free list.
func (s *Session) getFreePage() (storage.PageNum, error) {
	cat := s.catalogView()

	if cat.FreePage() == storage.NoPage {
		newPage := cat.TotalNumPages()
		cat.SetTotalNumPages(newPage + 1)
		if err := s.markCatalogDirty(); err != nil {
			return storage.NoPage, err
		}

		err := s.withPage(newPage, func(h *buffer.PageHandle) error {
			pv := pageView{data: h.Data}
			pv.SetNextPage(storage.NoPage)
			pv.SetPrevPage(storage.NoPage)
			return s.pool.MarkDirty(newPage)
		})
		if err != nil {
			return storage.NoPage, err
		}
		return newPage, nil
	}

	newPage := cat.FreePage()
	var nextPage storage.PageNum
	err := s.withPage(newPage, func(h *buffer.PageHandle) error {
		pv := pageView{data: h.Data}
		nextPage = pv.NextPage()
		pv.SetNextPage(storage.NoPage)
		pv.SetPrevPage(storage.NoPage)
		return s.pool.MarkDirty(newPage)
	})
	if err != nil {
		return storage.NoPage, err
	}
	cat.SetFreePage(nextPage)
	if err := s.markCatalogDirty(); err != nil {
		return storage.NoPage, err
	}
	if nextPage == storage.NoPage {
		return newPage, nil
	}

	err = s.withPage(nextPage, func(h *buffer.PageHandle) error {
		pageView{data: h.Data}.SetPrevPage(0)
		return s.pool.MarkDirty(nextPage)
	})
	if err != nil {
		return storage.NoPage, err
	}
	return newPage, nil
}

// appendToFreeList prepends the chain reachable via nextPage from
// pageNum to the free list. The chain must not already be on the free
// list.
func (s *Session) appendToFreeList(pageNum storage.PageNum) error {
	cat := s.catalogView()

	if cat.FreePage() == storage.NoPage {
		err := s.withPage(pageNum, func(h *buffer.PageHandle) error {
			pageView{data: h.Data}.SetPrevPage(0)
			return s.pool.MarkDirty(pageNum)
		})
		if err != nil {
			return err
		}
		cat.SetFreePage(pageNum)
		return s.markCatalogDirty()
	}

	curPage := pageNum
	for {
		var next storage.PageNum
		last := false
		err := s.withPage(curPage, func(h *buffer.PageHandle) error {
			pv := pageView{data: h.Data}
			if pv.NextPage() == storage.NoPage {
				pv.SetNextPage(cat.FreePage())
				last = true
				return s.pool.MarkDirty(curPage)
			}
			next = pv.NextPage()
			return nil
		})
		if err != nil {
			return err
		}
		if last {
			break
		}
		curPage = next
	}

	oldHead := cat.FreePage()
	err := s.withPage(oldHead, func(h *buffer.PageHandle) error {
		pageView{data: h.Data}.SetPrevPage(curPage)
		return s.pool.MarkDirty(oldHead)
	})
	if err != nil {
		return err
	}

	err = s.withPage(pageNum, func(h *buffer.PageHandle) error {
		pageView{data: h.Data}.SetPrevPage(0)
		return s.pool.MarkDirty(pageNum)
	})
	if err != nil {
		return err
	}
	cat.SetFreePage(pageNum)
	return s.markCatalogDirty()
}

// initNewPage resets pageNum to an empty slotted page sized for schema.
// table may be nil (used during CreateTable, before the table is open);
// when pageNum is table's already-pinned main page, that handle is
// reused instead of taking a second pin.
func (s *Session) initNewPage(table *Table, schema *Schema, pageNum storage.PageNum) error {
	n := recordsPerPage(schema)
	if n <= 0 {
		return ErrSchemaTooLarge
	}

	if table != nil && pageNum == table.mainPage && table.handle != nil {
		pageView{data: table.handle.Data}.resetSlots(n)
		return s.pool.MarkDirty(pageNum)
	}

	return s.withPage(pageNum, func(h *buffer.PageHandle) error {
		pageView{data: h.Data}.resetSlots(n)
		return s.pool.MarkDirty(pageNum)
	})
}
