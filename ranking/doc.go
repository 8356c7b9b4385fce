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


// Package ranking orders media catalog candidates by relevance to a free-text query.
//
// The Engine runs a fixed pipeline over the candidates of one query:
//   - Normalize and ExtractKeywords turn the query into a canonical form and terms
//   - Scorer awards exact, prefix, substring, per-term and edit-distance credit per field
//   - results below the minimum score are dropped
//   - Dedupe collapses entries sharing a normalized title and year
//   - the rest are sorted by score, year and collated title, then truncated
//
// An Engine holds only an immutable copy of its Config, so Rank may be called
// from many goroutines at once.
package ranking
