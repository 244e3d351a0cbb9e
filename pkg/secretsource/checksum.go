package secretsource

import "hash/crc32"

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// crc32c computes the CRC32C (Castagnoli) checksum of data, widened to int64
// to match the checksum type advertised by Secret Manager payloads.
func crc32c(data []byte) int64 {
	return int64(crc32.Checksum(data, castagnoli))
}

// checksumMatches reports whether the computed CRC32C of data equals the
// advertised value. An absent advertised checksum arrives as 0 and is
// compared as-is.
func checksumMatches(data []byte, advertised int64) bool {
	return crc32c(data) == advertised
}
