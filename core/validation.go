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

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	minYear = 1870
	maxYear = 2200
)

// ValidateMediaItem validates a MediaItem before it enters the catalog.
//
// Validation rules:
//   - Title must not be empty or whitespace
//   - Source must not be empty
//   - Year, when present, must parse as an integer between 1870 and 2200
//
// NOT validated (the ranking core tolerates anything):
//   - Actors, Director, Content, TypeName (may all be empty)
//   - ID (assigned from Key during ingestion)
func ValidateMediaItem(item *MediaItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidMediaItem)
	}

	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMediaItem, ErrEmptyTitle)
	}

	if strings.TrimSpace(item.Source) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMediaItem, ErrEmptySource)
	}

	if err := ValidateYear(item.Year); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMediaItem, err)
	}

	return nil
}

// ValidateYear accepts an empty year or a plausible four-digit release year.
func ValidateYear(year string) error {
	year = strings.TrimSpace(year)
	if year == "" {
		return nil
	}
	n, err := strconv.Atoi(year)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	if n < minYear || n > maxYear {
		return fmt.Errorf("%w: %d out of range", ErrInvalidYear, n)
	}
	return nil
}

// ValidateSnapshot validates a SourceQualitySnapshot.
//
// Validation rules:
//   - Source identifiers must not be empty
//   - Bonuses must be finite and non-negative
func ValidateSnapshot(snapshot *SourceQualitySnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot is nil", ErrInvalidSnapshot)
	}

	for source, bonus := range snapshot.Bonuses {
		if strings.TrimSpace(source) == "" {
			return fmt.Errorf("%w: %w", ErrInvalidSnapshot, ErrEmptySource)
		}
		if math.IsNaN(bonus) || math.IsInf(bonus, 0) || bonus < 0 {
			return fmt.Errorf("%w: %w: %s", ErrInvalidSnapshot, ErrNegativeBonus, source)
		}
	}

	return nil
}
