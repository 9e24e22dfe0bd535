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


// Package backfill regenerates package embeddings in batches.
//
// Use it after switching embedding models, or to pick up packages that were
// ingested while the embedding endpoint was down. Batches are spaced by a
// rate limiter, failed batches are retried with exponential backoff, and a
// batch that still fails is recorded in the run report without stopping the
// rest of the run.
package backfill
