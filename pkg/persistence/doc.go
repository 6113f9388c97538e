// Package persistence stores finalized workout records on disk.
//
// A RecordStore keeps one versioned JSON file per record under a
// directory, named by record ID. Records are written once on session end
// and never rewritten.
package persistence
