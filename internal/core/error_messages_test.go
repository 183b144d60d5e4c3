package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "missing source maps correctly",
			err:         fmt.Errorf("discover: %w", ErrSourceNotFound),
			wantCode:    "SRC001",
			wantMessage: "No data file was found",
		},
		{
			name:        "data load error maps correctly",
			err:         NewDataLoadError("data.csv", errors.New(`bare " in non-quoted field`)),
			wantCode:    "SRC002",
			wantMessage: "The data file could not be parsed",
		},
		{
			name:        "empty table maps correctly",
			err:         ErrEmptyTable,
			wantCode:    "SRC003",
			wantMessage: "The data file has no columns",
		},
		{
			name:        "database refusal wins over data load",
			err:         NewDataLoadError("postgres:modules", errors.New("dial tcp: connection refused")),
			wantCode:    "SRC004",
			wantMessage: "The source database could not be reached",
		},
		{
			name:        "empty grid maps correctly",
			err:         fmt.Errorf("export: %w", ErrEmptyGrid),
			wantCode:    "EXP001",
			wantMessage: "There are no columns to export",
		},
		{
			name:        "renderer unavailable maps correctly",
			err:         ErrRendererUnavailable,
			wantCode:    "EXP002",
			wantMessage: "PDF export is not available on this server",
		},
		{
			name:        "render error maps correctly",
			err:         &RenderError{Title: "report", Err: errors.New("font")},
			wantCode:    "EXP003",
			wantMessage: "The PDF report could not be generated",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("RATE LIMIT exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrRendererUnavailable)

	expected := "PDF export is not available on this server (Code: EXP002). Download the CSV file instead"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", ErrEmptyGrid, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsExportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"empty grid", fmt.Errorf("pdf: %w", ErrEmptyGrid), true},
		{"renderer unavailable", ErrRendererUnavailable, true},
		{"render error", &RenderError{Title: "t", Err: errors.New("boom")}, true},
		{"load error is not an export error", NewDataLoadError("x", errors.New("boom")), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExportError(tt.err); got != tt.want {
				t.Errorf("IsExportError() = %v, want %v", got, tt.want)
			}
		})
	}
}
