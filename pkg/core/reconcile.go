package core

import "fmt"

// Reconcile merges an ordered edit list into an original mapping and returns
// the mapping to commit. It is a pure function: neither input is mutated.
//
// Rules:
//   - A row flagged Delete removes the addressed key, whatever its value.
//   - A New row with an empty key is an unfilled placeholder and is dropped.
//   - A row addressing a key absent from the original becomes an addition.
//   - Keys not mentioned in edits keep their original value.
//   - Surviving originals keep their relative order, renames and value edits
//     included; additions append at the end in the order they were entered.
//   - Two surviving rows with the same key fail with DuplicateKeyError.
func Reconcile(original Mapping, edits []EditRow) (Mapping, error) {
	type pending struct {
		entry   Entry
		deleted bool
	}

	work := make([]pending, len(original))
	index := make(map[string]int, len(original))
	for i, e := range original {
		work[i] = pending{entry: e}
		index[e.Key] = i
	}

	var additions []Entry

	for n, row := range edits {
		if row.New {
			if row.Delete || row.Key == "" {
				continue
			}
			additions = append(additions, Entry{Key: row.Key, Value: TextValue(row.Value)})
			continue
		}

		target := row.OriginalKey
		if target == "" {
			target = row.Key
		}
		if target == "" {
			return nil, fmt.Errorf("edit row %d: %w", n, ErrEmptyKey)
		}

		i, ok := index[target]
		if !ok {
			// Addressed key is not (or no longer) present: a delete is a
			// no-op, anything else becomes an addition.
			if row.Delete {
				continue
			}
			additions = append(additions, Entry{Key: row.Key, Value: TextValue(row.Value)})
			continue
		}

		if row.Delete {
			work[i].deleted = true
			delete(index, target)
			continue
		}

		if row.Key == "" {
			return nil, fmt.Errorf("edit row %d: %w", n, ErrEmptyKey)
		}
		if row.Key != target {
			delete(index, target)
			index[row.Key] = i
		}
		work[i].entry = Entry{Key: row.Key, Value: TextValue(row.Value)}
	}

	result := make(Mapping, 0, len(work)+len(additions))
	for _, p := range work {
		if !p.deleted {
			result = append(result, p.entry)
		}
	}
	result = append(result, additions...)

	seen := make(map[string]bool, len(result))
	for _, e := range result {
		if seen[e.Key] {
			return nil, &DuplicateKeyError{Key: e.Key}
		}
		seen[e.Key] = true
	}

	return result, nil
}
