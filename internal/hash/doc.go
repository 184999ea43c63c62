// Package hash provides the CRC32-Castagnoli checksum used by codec frames
// and S3 uploads.
//
// Go's crc32 package uses SSE4.2 or the ARM CRC extension when available.
//
//	sum := hash.CRC32C(payload)
package hash
