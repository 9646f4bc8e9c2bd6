// Package uasset reads dialogue lines out of paired Unreal package files.
//
// A package is a header file (*.uasset) holding a name table and export
// descriptors, and a record file (*.uexp) holding the line stream. Record
// attribute keys are indices into the header's name table, so the header is
// always parsed first and its NameTable passed to ParseRecords.
//
// Every error is fatal for the file being parsed and carries a Kind; use
// errors.Is with the Err* sentinels to classify it.
package uasset
