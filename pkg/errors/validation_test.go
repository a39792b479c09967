package errors

import (
	"math"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "graph.txt", false},
		{"nested", "data/graphs/g1.txt", false},
		{"absolute", "/tmp/graph.txt", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := map[string]bool{"svg": true, "png": true}

	if err := ValidateFormat("SVG", allowed); err != nil {
		t.Errorf("ValidateFormat(SVG) = %v, want nil", err)
	}
	if err := ValidateFormat("gif", allowed); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(gif) = %v, want %v", err, ErrCodeInvalidFormat)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out.svg":         "svg",
		"dir/out.PNG":     "png",
		"no-extension":    "",
		"archive.tar.pdf": "pdf",
	}
	for in, want := range tests {
		if got := FormatFromPath(in); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateVertexCount(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{15, false},
		{MaxVertices, false},
		{-1, true},
		{MaxVertices + 1, true},
	}
	for _, tt := range tests {
		if err := ValidateVertexCount(tt.n); (err != nil) != tt.wantErr {
			t.Errorf("ValidateVertexCount(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}

func TestValidateDensity(t *testing.T) {
	tests := []struct {
		p       float64
		wantErr bool
	}{
		{0, false},
		{0.3, false},
		{1, false},
		{-0.1, true},
		{1.5, true},
		{math.NaN(), true},
	}
	for _, tt := range tests {
		if err := ValidateDensity(tt.p); (err != nil) != tt.wantErr {
			t.Errorf("ValidateDensity(%v) error = %v, wantErr %v", tt.p, err, tt.wantErr)
		}
	}
}
