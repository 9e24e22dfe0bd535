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


// Package relevance turns a candidate set and an interpreted query into a
// ranked, diversified, explainable result list.
//
// The pipeline has three pure stages, each independently callable:
//
//   - Score: per-candidate sub-scores (keyword, budget, capacity, food
//     type, venue type) alongside the retrieval similarity
//   - Rerank: weighted combination into one final score plus explanations
//   - Diversify: top-k selection that keeps one price tier or venue type
//     from dominating the page
//
// All stages are side-effect-free functions over in-memory data; they
// require no locking and no I/O. Weights and score bands are exposed as
// named configuration because they are the primary tuning surface.
package relevance
