// Package conv converts between integer widths with bounds checks.
//
// Use it where a count or size comes from untrusted input (an encoded
// header, a blob size) and must become a Go int. Conversions that are safe
// by construction use plain casts.
package conv
