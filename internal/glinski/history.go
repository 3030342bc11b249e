package glinski

// Record is one ply of the log. Records are values; the log never shares
// them with callers.
type Record struct {
	From  Square `json:"from"`
	To    Square `json:"to"`
	Moved Piece  `json:"moved"`

	// CapturedAt differs from To only for en-passant captures.
	CapturedAt Square `json:"captured_at"`
	Captured   Piece  `json:"captured"`

	EnPassantBefore SquareSet `json:"en_passant_before"`
	EnPassantAfter  SquareSet `json:"en_passant_after"`

	// NoKind unless the ply ended in a committed promotion.
	Promotion Kind `json:"promotion"`
}

// History is an undo/redo log: cursor counts the records currently applied.
type History struct {
	records []Record
	cursor  int
}

// Append drops every record beyond the cursor, then appends rec.
func (h *History) Append(rec Record) {
	h.records = append(h.records[:h.cursor], rec)
	h.cursor = len(h.records)
}

// Back moves the cursor one record towards the start and returns the record
// to reverse. False at the start.
func (h *History) Back() (Record, bool) {
	if h.cursor == 0 {
		return Record{}, false
	}
	h.cursor--
	return h.records[h.cursor], true
}

// Forward returns the record to re-apply and advances. False at the end.
func (h *History) Forward() (Record, bool) {
	if h.cursor == len(h.records) {
		return Record{}, false
	}
	rec := h.records[h.cursor]
	h.cursor++
	return rec, true
}

// TruncateLast discards the most recently applied record, unlike Back which
// keeps it for redo.
func (h *History) TruncateLast() (Record, bool) {
	if h.cursor == 0 {
		return Record{}, false
	}
	rec := h.records[h.cursor-1]
	h.cursor--
	h.records = h.records[:h.cursor]
	return rec, true
}

// MarkPromotion stamps the promotion choice on the last applied record.
func (h *History) MarkPromotion(k Kind) bool {
	if h.cursor == 0 {
		return false
	}
	h.records[h.cursor-1].Promotion = k
	return true
}

func (h *History) Len() int    { return len(h.records) }
func (h *History) Cursor() int { return h.cursor }

// Last returns the most recently applied record.
func (h *History) Last() (Record, bool) {
	if h.cursor == 0 {
		return Record{}, false
	}
	return h.records[h.cursor-1], true
}

// Records returns a copy of the whole log, including undone records.
func (h *History) Records() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}
