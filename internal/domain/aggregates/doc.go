// Package aggregates declares the aggregate-facing contracts of the
// ordering domain: canonical error codes, operation inputs/results, and
// policy expectations the data layer implementations must honor.
package aggregates
