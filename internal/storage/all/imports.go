// Package all registers every built-in storage backend. Import it for side
// effects from the command that opens storage by kind.
package all

import (
	_ "nbastats/internal/storage/csvfile"
)
