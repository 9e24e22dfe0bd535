// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidatePackage validates a Package according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - PriceMin must be >= 0 and <= PriceMax
//   - Capacity must not be negative
//
// NOT validated (populated by processors):
//   - Vector (can be empty until embedding processor runs)
//   - SearchText (MatchText falls back to name + description)
//   - ID (0 is valid from database sequences)
func ValidatePackage(pkg *Package) error {
	if pkg == nil {
		return fmt.Errorf("%w: package is nil", ErrInvalidPackage)
	}

	if pkg.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPackage, ErrEmptyPackageName)
	}

	if pkg.PriceMin < 0 || pkg.PriceMin > pkg.PriceMax {
		return fmt.Errorf("%w: %w: [%0.2f, %0.2f]", ErrInvalidPackage, ErrInvalidPriceRange, pkg.PriceMin, pkg.PriceMax)
	}

	if pkg.Capacity < 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidPackage, ErrNegativeCapacity, pkg.Capacity)
	}

	return nil
}
