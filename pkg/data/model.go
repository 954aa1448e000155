package data

// Entry is one tracked anime and its known episode state.
type Entry struct {
	Title      string
	SourceURL  string
	Provider   string
	Episodes   []int  // episode numbers the catalog knows about, provider order
	PlaylistID string // opaque handle used to re-fetch the episode list
}

// Key identifies an entry within the catalog. Title is display-only and
// takes no part in identity.
type Key struct {
	Provider  string
	SourceURL string
}

func (e Entry) Key() Key {
	return Key{Provider: e.Provider, SourceURL: e.SourceURL}
}

func (e Entry) SameIdentity(other Entry) bool {
	return e.Key() == other.Key()
}

// Catalog is the ordered list of tracked entries. Order is insertion order
// and is preserved across add/replace so display indices stay stable.
type Catalog []Entry

// IndexOf returns the position of the entry sharing e's identity key, or -1.
func (c Catalog) IndexOf(e Entry) int {
	for i := range c {
		if c[i].SameIdentity(e) {
			return i
		}
	}
	return -1
}
