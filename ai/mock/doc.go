// Package mock provides test doubles for the ai interfaces.
//
// Mocks default to deterministic behavior (hash-derived embeddings, canned
// completions) and support behavior injection via public function fields.
package mock
