// Package query renders request query mappings into URL query strings.
//
// Every value has a canonical textual form: times use UTC ISO-8601 with
// millisecond precision, mappings and structs use compact JSON, nil renders
// as "null", and everything else uses its natural text form. Encoding a
// mapping drops nil entries entirely and expands slice entries element-wise
// into repeated keys.
package query
