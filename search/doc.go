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


// Package search orchestrates the marketplace relevance pipeline.
//
// The Searcher type runs a multi-stage pipeline over candidate service
// packages:
//   - Query interpretation (parameter extraction, expansion, variants)
//   - Candidate retrieval through a pluggable CandidateProvider
//   - Multi-signal scoring and weighted reranking
//   - Diversity-aware final selection
//
// Interpretation stages degrade gracefully when the language model is
// unavailable, so a search always returns similarity-ranked results as
// long as retrieval succeeds. The individual stages are exported from the
// relevance package for callers that bring their own candidates.
package search
