// Package fs provides the filesystem primitives behind the safe-write
// protocol: backup name probing and temp-file staging.
package fs

import (
	"fmt"
	"os"

	"github.com/quilltools/pdfmeta/pkg/core"
)

// DefaultProbeLimit bounds the backup name search. Exhausting it means the
// directory is in a hostile or corrupted state; it is a safety valve, not a
// code path normal operation reaches.
const DefaultProbeLimit = 10000

// NextBackupPath returns the first free backup path for original, probing
// the suffixes .bak, .bak1, .bak2, ... in order.
//
// Existence is re-checked against storage on every call; results are never
// cached, because the directory may have changed since the last probe.
func NextBackupPath(original string) (string, error) {
	return NextBackupPathN(original, DefaultProbeLimit)
}

// NextBackupPathN is NextBackupPath with an explicit probe limit.
func NextBackupPathN(original string, limit int) (string, error) {
	for i := 0; i < limit; i++ {
		candidate := original + ".bak"
		if i > 0 {
			candidate = fmt.Sprintf("%s.bak%d", original, i)
		}
		if _, err := os.Lstat(candidate); err != nil {
			if os.IsNotExist(err) {
				return candidate, nil
			}
			return "", fmt.Errorf("probing %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("probed %d candidates for %s: %w", limit, original, core.ErrBackupSpaceExhausted)
}
