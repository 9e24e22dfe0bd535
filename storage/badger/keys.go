package badger

import (
	"fmt"

	"github.com/poiesic/banquet/core"
)

// Key prefixes for different data types
const (
	packagePrefix = "pkgrec"
	packageIDSeq  = "pkgrecseq"
)

// makePackageKey generates a key for a package by ID.
func makePackageKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", packagePrefix, id))
}
