// Package core provides the roster processing pipeline.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Every diagnostic produced by the pipeline carries one of these codes so users
// can quote it to support staff.
//
// # Join Errors (JOIN001-JOIN099)
//
//	JOIN001 - Join skipped: Seating file could not be used, roster exported alone
//	          Action: Fix the seating file and upload both files again
//	          Patterns: "join skipped"
//
//	JOIN002 - Duplicate seating key: Several seating rows share one employee identifier
//	          Action: Keep one seating row per employee; the first row was used
//	          Patterns: "duplicate seating key"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid date: A date could not be read and was left empty
//	         Action: Use YYYY-MM-DD, MM/DD/YYYY, or 15-Jan-2024
//	         Patterns: "invalid date"
//
//	VAL004 - Missing column: Required column is missing from CSV
//	         Action: Check that all required columns are present in your file
//	         Patterns: "missing required column"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large          Patterns: "file too large"
//	FILE002 - Invalid CSV             Patterns: "invalid csv"
//	FILE003 - Encoding error          Patterns: "invalid utf-8", "encoding error"
//	FILE004 - No file                 Patterns: "no file provided"
//	FILE005 - Empty file              Patterns: "empty file"
//	FILE006 - Irregular layout        Patterns: "columns, expected", "duplicate column"
//	FILE007 - Unsupported encoding    Patterns: "unsupported encoding"
//	FILE008 - Unsupported format      Patterns: "unsupported download format"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL001 - Invalid upload           Patterns: "invalid upload form"
//	UPL002 - System busy              Patterns: "too many uploads"
//	UPL004 - Request cancelled        Patterns: "context canceled"
//	UPL005 - Request timeout          Patterns: "context deadline exceeded", "timeout"
//
// # Profile Errors (PRF001-PRF099)
//
//	PRF001 - Unknown profile          Patterns: "unknown profile"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited            Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are listed first.
// A skipped join wraps the seating file's own error, so "join skipped" must
// precede the validation and file patterns.
package core

import (
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: the first match wins.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Join Errors (JOIN001-JOIN002)
	// =========================================================================
	{
		pattern: "join skipped",
		msg: UserMessage{
			Message: "Seating file could not be used, roster exported alone",
			Action:  "Fix the seating file and upload both files again",
			Code:    "JOIN001",
		},
	},
	{
		pattern: "duplicate seating key",
		msg: UserMessage{
			Message: "Several seating rows share one employee identifier",
			Action:  "Keep one seating row per employee; the first row was used",
			Code:    "JOIN002",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001, VAL004)
	// =========================================================================
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "A date could not be read and was left empty",
			Action:  "Use YYYY-MM-DD, MM/DD/YYYY, or 15-Jan-2024",
			Code:    "VAL001",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from CSV",
			Action:  "Check that all required columns are present in your file",
			Code:    "VAL004",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE007)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Remove unused columns or rows and try again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid utf-8",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save file as UTF-8 or choose the latin1 encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save file as UTF-8 or choose the latin1 encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a CSV file with a header row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "columns, expected",
		msg: UserMessage{
			Message: "A row does not match the header width",
			Action:  "Check the row for stray commas or missing cells",
			Code:    "FILE006",
		},
	},
	{
		pattern: "duplicate column",
		msg: UserMessage{
			Message: "The header repeats a column name",
			Action:  "Rename or remove the repeated column",
			Code:    "FILE006",
		},
	},
	{
		pattern: "unsupported encoding",
		msg: UserMessage{
			Message: "The requested text encoding is not supported",
			Action:  "Use one of: auto, latin1, windows-1252, utf-8",
			Code:    "FILE007",
		},
	},

	{
		pattern: "unsupported download format",
		msg: UserMessage{
			Message: "The requested download format is not available",
			Action:  "Use format=csv or format=xlsx",
			Code:    "FILE008",
		},
	},

	// =========================================================================
	// Upload Errors (UPL001-UPL005)
	// =========================================================================
	{
		pattern: "invalid upload form",
		msg: UserMessage{
			Message: "The upload could not be read",
			Action:  "Submit the files as a multipart form with a field named main",
			Code:    "UPL001",
		},
	},
	{
		pattern: "too many uploads",
		msg: UserMessage{
			Message: "System is busy processing other uploads",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},

	// =========================================================================
	// Profile Errors (PRF001)
	// =========================================================================
	{
		pattern: "unknown profile",
		msg: UserMessage{
			Message: "Unknown processing profile",
			Action:  "Pick one of the profiles listed on the upload page",
			Code:    "PRF001",
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
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first pattern match, or the ERR000 fallback.
//
// Example:
//
//	err := &SchemaError{Table: "primary", Missing: []string{"Location City"}}
//	msg := MapError(err)
//	// msg.Code == "VAL004"
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

// IsUserFacing reports whether err matches a known pattern (not the ERR000 fallback).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging while providing a clean message for users.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
