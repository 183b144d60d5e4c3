// Package core provides the comparison logic for module specification tables.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - No data file: No data file was found
//	         Action: Place a data.csv file in the data directory
//	         Patterns: "source not found"
//
//	SRC002 - Unreadable data: The data file could not be parsed
//	         Action: Check that the file is a consistent comma-separated table
//	         Patterns: "data load failed"
//
//	SRC003 - Empty table: The data file has no columns
//	         Action: Add a header row with a model column and parameters
//	         Patterns: "empty table"
//
//	SRC004 - Database unavailable: The source database could not be reached
//	         Action: Check SOURCE_DATABASE_URL and try again
//	         Patterns: "connection refused"
//
// # Comparison Errors (CMP001-CMP099)
//
//	CMP001 - No models: No known model was selected
//	         Action: Select at least one model to compare
//	         Patterns: "no models selected"
//
//	CMP002 - No parameters: No known parameter was selected
//	         Action: Select at least one parameter
//	         Patterns: "no parameters selected"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Empty export: There are no columns to export
//	         Action: Adjust the selection before exporting
//	         Patterns: "empty grid"
//
//	EXP002 - PDF unavailable: PDF export is not available on this server
//	         Action: Download the CSV file instead
//	         Patterns: "renderer unavailable"
//
//	EXP003 - PDF failed: The PDF report could not be generated
//	         Action: Download the CSV file instead
//	         Patterns: "render failed"
//
//	EXP004 - Unknown format: The requested export format is not supported
//	         Action: Use csv, pdf, xlsx, yaml, md, txt or html
//	         Patterns: "unknown export format"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit", "too many renders"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns come first.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: the first match wins.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Source Errors (SRC001-SRC004)
	// =========================================================================
	{
		pattern: "source not found",
		msg: UserMessage{
			Message: "No data file was found",
			Action:  "Place a data.csv file in the data directory",
			Code:    "SRC001",
		},
	},
	{
		pattern: "empty table",
		msg: UserMessage{
			Message: "The data file has no columns",
			Action:  "Add a header row with a model column and parameters",
			Code:    "SRC003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "The source database could not be reached",
			Action:  "Check SOURCE_DATABASE_URL and try again",
			Code:    "SRC004",
		},
	},
	{
		pattern: "data load failed",
		msg: UserMessage{
			Message: "The data file could not be parsed",
			Action:  "Check that the file is a consistent comma-separated table",
			Code:    "SRC002",
		},
	},

	// =========================================================================
	// Comparison Errors (CMP001-CMP002)
	// =========================================================================
	{
		pattern: "no models selected",
		msg: UserMessage{
			Message: "No known model was selected",
			Action:  "Select at least one model to compare",
			Code:    "CMP001",
		},
	},
	{
		pattern: "no parameters selected",
		msg: UserMessage{
			Message: "No known parameter was selected",
			Action:  "Select at least one parameter",
			Code:    "CMP002",
		},
	},

	// =========================================================================
	// Export Errors (EXP001-EXP004)
	// =========================================================================
	{
		pattern: "empty grid",
		msg: UserMessage{
			Message: "There are no columns to export",
			Action:  "Adjust the selection before exporting",
			Code:    "EXP001",
		},
	},
	{
		pattern: "renderer unavailable",
		msg: UserMessage{
			Message: "PDF export is not available on this server",
			Action:  "Download the CSV file instead",
			Code:    "EXP002",
		},
	},
	{
		pattern: "render failed",
		msg: UserMessage{
			Message: "The PDF report could not be generated",
			Action:  "Download the CSV file instead",
			Code:    "EXP003",
		},
	},
	{
		pattern: "unknown export format",
		msg: UserMessage{
			Message: "The requested export format is not supported",
			Action:  "Use csv, pdf, xlsx, yaml, md, txt or html",
			Code:    "EXP004",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "too many renders",
		msg: UserMessage{
			Message: "Too many reports are being generated",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or ERR000 if none match.
//
// Example:
//
//	msg := MapError(core.ErrEmptyGrid)
//	// msg.Code == "EXP001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
