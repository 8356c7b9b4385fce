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


// Package search answers catalog queries with the ranking engine.
//
// The Searcher type runs the read side of the system:
//   - Loading candidates from the catalog, optionally restricted to sources
//   - Ranking them with a ranking.Engine
//   - Producing refinement suggestions for the ranked results
//
// Every search is recorded in Prometheus metrics. SearchMany ranks several
// queries against one candidate load on a worker pool.
package search
