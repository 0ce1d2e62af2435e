// Mapping is the central entity of the domain.
package core

// Value is the decoded form of a single information dictionary value.
//
// Text holds the value coerced to text. Values that cannot be represented
// as text (indirect references, arrays, nested dictionaries) keep the reason
// in Reason instead; Raw always preserves the serialized form so a commit
// can carry the value through unchanged.
type Value struct {
	Text   string
	Raw    string
	Reason string
}

// TextValue returns a textual Value.
func TextValue(s string) Value {
	return Value{Text: s}
}

// UnrepresentableValue returns a Value that could not be decoded to text.
// raw is the serialized form found in the document, reason explains why.
func UnrepresentableValue(raw, reason string) Value {
	return Value{Raw: raw, Reason: reason}
}

// IsText reports whether the value decoded to text.
func (v Value) IsText() bool { return v.Reason == "" }

// String returns the text for textual values and a placeholder otherwise.
func (v Value) String() string {
	if v.IsText() {
		return v.Text
	}
	return "<" + v.Reason + ">"
}

// Entry is one key/value pair of a document's information dictionary.
// Keys are case-sensitive and unique within a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an ordered snapshot of a document's information dictionary.
// Order reflects the order entries were encountered and only matters for
// display; equality is order-insensitive.
type Mapping []Entry

// Get returns the value for key and whether it is present.
func (m Mapping) Get(key string) (Value, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether key is present.
func (m Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in mapping order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Clone returns a copy that shares no storage with m.
func (m Mapping) Clone() Mapping {
	if m == nil {
		return nil
	}
	out := make(Mapping, len(m))
	copy(out, m)
	return out
}

// Equal reports whether m and other contain the same keys with the same
// values, irrespective of order.
func (m Mapping) Equal(other Mapping) bool {
	if len(m) != len(other) {
		return false
	}
	for _, e := range m {
		v, ok := other.Get(e.Key)
		if !ok || v != e.Value {
			return false
		}
	}
	return true
}

// EditRow is one row of the presentation layer's ordered edit list.
//
// A row normally addresses the original entry with the same Key. A rename
// sets OriginalKey to the entry being renamed and Key to its new name.
// Rows flagged New are additions and append at the end; a New row with an
// empty Key is a placeholder the user never filled in and is dropped.
type EditRow struct {
	Key         string
	Value       string
	OriginalKey string
	Delete      bool
	New         bool
}

// CommitResult describes a successful commit: the edited document at Path
// and the renamed original at BackupPath.
type CommitResult struct {
	Path       string
	BackupPath string
}
