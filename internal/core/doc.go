// Package core provides the roster processing pipeline.
//
// This package holds all domain logic independent of any UI or transport
// layer. The web handlers call it, and so do the tests, without modification.
//
// # Pipeline
//
// A run takes the raw bytes of an employee roster and, optionally, a seating
// file, and produces one table and its CSV encoding:
//
//  1. [DecodeTable] transcodes and parses each file into a [Table]
//  2. [Validate] checks the profile's required columns
//  3. [Normalize] parses date columns and trims and folds text columns
//  4. [Derive] appends the join-recency, location and department columns
//  5. [LeftJoin] attaches seating details by employee identifier
//  6. [EncodeCSV] serializes the result; [EncodeXLSX] offers a workbook too
//
// [Run] performs all of this as a pure function. [Service.Process] wraps it
// with profile lookup, a concurrency limit, a deadline and a run ID.
//
// # Profiles
//
// Roster exports come in several layouts. Each layout is a [Profile]
// registered at init time with [Register]; package profiles registers the
// built-in ones:
//
//	core.Register(core.Profile{
//	    Name:             "elcm-city",
//	    PrimaryColumns:   []string{"Employee Code", "Date of Joining", ...},
//	    IdentifierColumn: "Employee Code",
//	    JoinDateColumn:   "Date of Joining",
//	    LocationPolicy:   core.LocationEquals,
//	    ...
//	})
//
// # Diagnostics
//
// Run never returns a Go error. Problems are collected as [Diagnostic]
// values with a severity:
//
//   - error: the roster could not be used and no table was produced
//   - warning: something was skipped or nulled, the output is still usable
//   - info: progress messages such as the success line
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - VAL001-VAL004: Validation errors (unreadable dates, missing columns)
//   - JOIN001-JOIN002: Seating join problems
//   - FILE001-FILE008: File errors (size, encoding, layout, format)
//   - UPL001-UPL005: Upload admission errors (busy, cancelled, timeout)
//   - PRF001: Unknown profile
package core
