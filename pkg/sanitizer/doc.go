// Package sanitizer normalizes client-supplied input before it reaches
// validation and storage: whitespace collapsing for free text, E.164
// formatting for phone numbers, de-duplication for tag slices, and photo
// reference cleanup.
package sanitizer
