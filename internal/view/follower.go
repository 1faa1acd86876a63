package view

// TailFollower remembers the most recently inserted entry so the UI can keep
// it selected across recomputations.
type TailFollower struct {
	lastID int64
	has    bool
}

// Inserted records a newly stored entry id.
func (f *TailFollower) Inserted(id int64) {
	f.lastID = id
	f.has = true
}

// Reset forgets the last insertion, e.g. after a reload.
func (f *TailFollower) Reset() {
	f.lastID, f.has = 0, false
}

// Index returns the position of the last inserted entry within v, or false
// when nothing was inserted or the entry is filtered out.
func (f *TailFollower) Index(v ViewState) (int, bool) {
	if !f.has {
		return 0, false
	}
	i := v.IndexOf(f.lastID)
	return i, i >= 0
}

// Latest returns the position of the newest visible entry, the one with the
// highest id. It backs the "jump to latest" action and works at any time.
func Latest(v ViewState) (int, bool) {
	best := -1
	for i, row := range v.Rows {
		if best < 0 || row.Entry.ID > v.Rows[best].Entry.ID {
			best = i
		}
	}
	return best, best >= 0
}
