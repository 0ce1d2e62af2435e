package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrUnreadableDocument means the file could not be parsed as a PDF
	// container.
	ErrUnreadableDocument = errors.New("document cannot be read as a PDF")

	// ErrEncryptedDocument means the file requires credentials to open.
	// Decryption is not supported; the caller should report the file as
	// unsupported input.
	ErrEncryptedDocument = errors.New("document is encrypted")

	// ErrEmptyKey means an edit row addressed an entry with an empty key.
	ErrEmptyKey = errors.New("metadata key cannot be empty")

	// ErrBackupSpaceExhausted means no free backup name was found within the
	// probe limit. This is a safety valve against a hostile directory state,
	// not an expected outcome.
	ErrBackupSpaceExhausted = errors.New("no available backup name")

	// ErrBackupRenameFailed means the original could not be renamed to its
	// backup path. The operation aborts with storage untouched.
	ErrBackupRenameFailed = errors.New("cannot rename original to backup")

	// ErrFinalizeWriteFailed means the edited output could not be moved into
	// place after the backup rename. The original was restored from the
	// backup.
	ErrFinalizeWriteFailed = errors.New("cannot move edited output into place")
)

// DuplicateKeyError reports two surviving edit rows claiming the same key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate metadata key %q", e.Key)
}

// UnsupportedValueError reports a single entry whose value could not be
// decoded to text. Extraction never fails the whole document over one
// entry; this error is returned when a caller asks for the text of such
// an entry.
type UnsupportedValueError struct {
	Key    string
	Reason string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("metadata value for %q is not representable as text: %s", e.Key, e.Reason)
}

// CriticalRecoveryError means the finalize step failed and the backup could
// not be renamed back to the original path. Storage now requires manual
// intervention; both surviving paths are named so a human can reconcile.
type CriticalRecoveryError struct {
	BackupPath  string
	TempPath    string
	FinalizeErr error
	RestoreErr  error
}

func (e *CriticalRecoveryError) Error() string {
	return fmt.Sprintf(
		"finalize failed (%v) and backup restoration failed (%v): original bytes are at %s, edited output is at %s",
		e.FinalizeErr, e.RestoreErr, e.BackupPath, e.TempPath,
	)
}

// TextOf returns the decoded text for key.
// It returns an UnsupportedValueError if the entry exists but its value is
// not representable as text, and false if the key is absent.
func (m Mapping) TextOf(key string) (string, bool, error) {
	v, ok := m.Get(key)
	if !ok {
		return "", false, nil
	}
	if !v.IsText() {
		return "", true, &UnsupportedValueError{Key: key, Reason: v.Reason}
	}
	return v.Text, true, nil
}
