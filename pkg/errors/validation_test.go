package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateViewport(t *testing.T) {
	tests := []struct {
		name                   string
		xmin, xmax, ymin, ymax float64
		wantErr                bool
	}{
		{"default frame", -2, 2, -1, 1, false},
		{"tiny frame", -0.7435, -0.7420, 0.1310, 0.1325, false},

		{"x inverted", 2, -2, -1, 1, true},
		{"x empty", 1, 1, -1, 1, true},
		{"y inverted", -2, 2, 1, -1, true},
		{"y empty", -2, 2, 0, 0, true},
		{"nan", math.NaN(), 2, -1, 1, true},
		{"inf", -2, math.Inf(1), -1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateViewport(tt.xmin, tt.xmax, tt.ymin, tt.ymax)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateViewport() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidViewport) {
				t.Errorf("ValidateViewport() code = %v, want %v", GetCode(err), ErrCodeInvalidViewport)
			}
		})
	}
}

func TestValidateResolution(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"default", 100, 24, false},
		{"single cell", 1, 1, false},
		{"zero width", 0, 24, true},
		{"zero height", 100, 0, true},
		{"negative", -5, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResolution(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateResolution(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIterations(t *testing.T) {
	if err := ValidateIterations(1000); err != nil {
		t.Errorf("ValidateIterations(1000) = %v", err)
	}
	if err := ValidateIterations(0); !Is(err, ErrCodeInvalidIterations) {
		t.Errorf("ValidateIterations(0) = %v, want %v", err, ErrCodeInvalidIterations)
	}
}

func TestValidateRegionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "seahorse", false},
		{"with dash", "triple-spiral", false},
		{"with underscore", "my_region", false},
		{"with digits", "zoom2", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 65), true},
		{"space inside", "sea horse", true},
		{"slash", "a/b", true},
		{"control char", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegionName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegionName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
