package record

import (
	"minibase/pkg/buffer"
	"minibase/pkg/storage"
)

// withPage pins pageNum, runs fn against its handle, and unpins
// regardless of outcome via defer. It is the idiomatic replacement for
// the reference's BEGIN/END_USE_PAGE_HANDLE_HEADER macros, which could
// be bypassed entirely by a return statement in the middle of the
// "held" block.
func (s *Session) withPage(pageNum storage.PageNum, fn func(h *buffer.PageHandle) error) error {
	h, err := s.pool.Pin(pageNum)
	if err != nil {
		return err
	}
	defer s.pool.Unpin(pageNum)
	return fn(h)
}

// withTablePage runs fn against pageNum's bytes, reusing t's already
// pinned main-page handle when pageNum is the main page so that no
// re-entrant pin is taken.
func (t *Table) withTablePage(pageNum storage.PageNum, fn func(pv pageView) error) error {
	if pageNum == t.mainPage {
		return fn(pageView{data: t.handle.Data})
	}
	return t.session.withPage(pageNum, func(h *buffer.PageHandle) error {
		return fn(pageView{data: h.Data})
	})
}
