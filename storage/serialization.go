package storage

import (
	"github.com/poiesic/banquet/core"
)

// MarshalPackage serializes a Package to bytes.
func MarshalPackage(pkg *core.Package) []byte {
	buf := make([]byte, core.PackageMUS.Size(*pkg))
	core.PackageMUS.Marshal(*pkg, buf)
	return buf
}

// UnmarshalPackage deserializes a Package from bytes.
func UnmarshalPackage(data []byte) (*core.Package, error) {
	pkg, _, err := core.PackageMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}
