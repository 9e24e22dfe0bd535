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


package search

import "errors"

var (
	// ErrProviderRequired is returned when a candidate provider is not supplied.
	ErrProviderRequired = errors.New("candidate provider required")

	// ErrAIProviderRequired is returned when an AI provider is not supplied.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrCatalogRequired is returned when a catalog repository is not supplied.
	ErrCatalogRequired = errors.New("catalog repository required")

	// ErrEmbedderRequired is returned when an embedder is not supplied.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidTopK is returned when the result count option is not positive.
	ErrInvalidTopK = errors.New("top K must be positive")

	// ErrInvalidRetrievalLimit is returned when the retrieval limit option is not positive.
	ErrInvalidRetrievalLimit = errors.New("retrieval limit must be positive")
)
