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


// Package interpret converts free-text search queries into structured
// parameters, expanded queries, and alternate phrasings.
//
// The Interpreter delegates natural-language understanding to an injected
// ai.TextCompleter and owns only the contract of those calls. Every
// operation has a documented fallback: a failing or timed-out model call
// degrades the search to "less smart" rather than failing it.
package interpret
