package storage

// ReadBlock reads the page numbered n into dst, which must be at least
// PageSize bytes. It fails with ErrReadNonExistingPage if n is out of
// range or the read comes back short.
func (h *FileHandle) ReadBlock(n PageNum, dst []byte) error {
	if n < 0 || n >= h.TotalPages {
		return ErrReadNonExistingPage
	}
	read, err := h.file.ReadAt(dst[:PageSize], int64(n)*PageSize)
	if err != nil || read != PageSize {
		return ErrReadNonExistingPage
	}
	return nil
}

// WriteBlock writes PageSize bytes from src to the page numbered n. It
// fails with ErrReadNonExistingPage if n is out of range, or
// ErrWriteFailed if the write comes back short.
func (h *FileHandle) WriteBlock(n PageNum, src []byte) error {
	if n < 0 || n >= h.TotalPages {
		return ErrReadNonExistingPage
	}
	written, err := h.file.WriteAt(src[:PageSize], int64(n)*PageSize)
	if err != nil || written != PageSize {
		return ErrWriteFailed
	}
	return nil
}

// BlockPos returns the handle's current logical page position.
func (h *FileHandle) BlockPos() PageNum {
	return h.CurPagePos
}

// ReadFirstBlock reads page 0 into dst.
func (h *FileHandle) ReadFirstBlock(dst []byte) error {
	return h.ReadBlock(0, dst)
}

// ReadPreviousBlock reads the page before CurPagePos into dst, advancing
// CurPagePos only on success.
func (h *FileHandle) ReadPreviousBlock(dst []byte) error {
	n := h.CurPagePos - 1
	if err := h.ReadBlock(n, dst); err != nil {
		return err
	}
	h.CurPagePos = n
	return nil
}

// ReadCurrentBlock reads the page at CurPagePos into dst.
func (h *FileHandle) ReadCurrentBlock(dst []byte) error {
	return h.ReadBlock(h.CurPagePos, dst)
}

// ReadNextBlock reads the page after CurPagePos into dst, advancing
// CurPagePos only on success.
func (h *FileHandle) ReadNextBlock(dst []byte) error {
	n := h.CurPagePos + 1
	if err := h.ReadBlock(n, dst); err != nil {
		return err
	}
	h.CurPagePos = n
	return nil
}

// ReadLastBlock reads the last page of the file into dst.
func (h *FileHandle) ReadLastBlock(dst []byte) error {
	return h.ReadBlock(h.TotalPages-1, dst)
}

// WriteCurrentBlock writes src to the page at CurPagePos.
func (h *FileHandle) WriteCurrentBlock(src []byte) error {
	return h.WriteBlock(h.CurPagePos, src)
}

// AppendEmptyBlock appends a single zero-filled page to the file and
// bumps TotalPages.
func (h *FileHandle) AppendEmptyBlock() error {
	empty := make([]byte, PageSize)
	written, err := h.file.WriteAt(empty, int64(h.TotalPages)*PageSize)
	if err != nil || written != PageSize {
		return ErrWriteFailed
	}
	h.TotalPages++
	return nil
}

// EnsureCapacity appends empty blocks until TotalPages is at least k.
func (h *FileHandle) EnsureCapacity(k PageNum) error {
	for h.TotalPages < k {
		if err := h.AppendEmptyBlock(); err != nil {
			return err
		}
	}
	return nil
}
