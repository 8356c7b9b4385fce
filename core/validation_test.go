package core

import (
	"errors"
	"math"
	"testing"
)

func TestValidateMediaItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *MediaItem
		wantErr error
	}{
		{
			name:    "valid item",
			item:    &MediaItem{Title: "Inception", Year: "2010", Source: "tyyszy"},
			wantErr: nil,
		},
		{
			name:    "valid item without year",
			item:    &MediaItem{Title: "三体", Source: "bfzy"},
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidMediaItem,
		},
		{
			name:    "blank title",
			item:    &MediaItem{Title: "   ", Source: "bfzy"},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "missing source",
			item:    &MediaItem{Title: "Heat"},
			wantErr: ErrEmptySource,
		},
		{
			name:    "non numeric year",
			item:    &MediaItem{Title: "Heat", Source: "ruyi", Year: "unknown"},
			wantErr: ErrInvalidYear,
		},
		{
			name:    "year out of range",
			item:    &MediaItem{Title: "Heat", Source: "ruyi", Year: "95"},
			wantErr: ErrInvalidYear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMediaItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMediaItem() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMediaItem() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidMediaItem) {
				t.Errorf("ValidateMediaItem() error = %v, want wrapped %v", err, ErrInvalidMediaItem)
			}
		})
	}
}

func TestValidateYear(t *testing.T) {
	for _, year := range []string{"", " ", "1999", " 2024 "} {
		if err := ValidateYear(year); err != nil {
			t.Errorf("ValidateYear(%q) unexpected error = %v", year, err)
		}
	}
	for _, year := range []string{"abcd", "1800", "20100", "-1"} {
		if err := ValidateYear(year); !errors.Is(err, ErrInvalidYear) {
			t.Errorf("ValidateYear(%q) error = %v, want %v", year, err, ErrInvalidYear)
		}
	}
}

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		snap    *SourceQualitySnapshot
		wantErr error
	}{
		{name: "valid", snap: &SourceQualitySnapshot{Bonuses: map[string]float64{"tyyszy": 10}}},
		{name: "empty", snap: &SourceQualitySnapshot{}},
		{name: "nil", snap: nil, wantErr: ErrInvalidSnapshot},
		{name: "empty source", snap: &SourceQualitySnapshot{Bonuses: map[string]float64{"": 1}}, wantErr: ErrEmptySource},
		{name: "negative bonus", snap: &SourceQualitySnapshot{Bonuses: map[string]float64{"a": -1}}, wantErr: ErrNegativeBonus},
		{name: "nan bonus", snap: &SourceQualitySnapshot{Bonuses: map[string]float64{"a": math.NaN()}}, wantErr: ErrNegativeBonus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot(tt.snap)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSnapshot() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSnapshot() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
