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

import "errors"

// Domain validation errors
var (
	// ErrInvalidPackage indicates a Package failed validation.
	ErrInvalidPackage = errors.New("invalid package")

	// ErrEmptyPackageName indicates the package Name field is empty.
	ErrEmptyPackageName = errors.New("package name cannot be empty")

	// ErrInvalidPriceRange indicates PriceMin is greater than PriceMax or negative.
	ErrInvalidPriceRange = errors.New("invalid price range")

	// ErrNegativeCapacity indicates a negative capacity value.
	ErrNegativeCapacity = errors.New("capacity cannot be negative")
)
