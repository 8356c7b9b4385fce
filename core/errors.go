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
	// ErrInvalidMediaItem indicates a MediaItem failed validation.
	ErrInvalidMediaItem = errors.New("invalid media item")

	// ErrInvalidSnapshot indicates a SourceQualitySnapshot failed validation.
	ErrInvalidSnapshot = errors.New("invalid source quality snapshot")

	// ErrEmptyTitle indicates the Title field is empty or whitespace.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptySource indicates the Source field is empty.
	ErrEmptySource = errors.New("source cannot be empty")

	// ErrInvalidYear indicates a non-empty Year that is not a plausible release year.
	ErrInvalidYear = errors.New("invalid year")

	// ErrNegativeBonus indicates a source bonus below zero.
	ErrNegativeBonus = errors.New("source bonus cannot be negative")

	// ErrMalformedFeed indicates catalog JSON that could not be decoded.
	ErrMalformedFeed = errors.New("malformed catalog feed")
)
