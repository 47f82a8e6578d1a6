// Package hasher names payloads by their content.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"path"

	"github.com/cespare/xxhash/v2"
)

// DefaultHexLen is the hash length stored in reports: 16 hex chars
// (64 bits), collision-safe for any realistic number of captures.
const DefaultHexLen = 16

// ContentHash computes the xxHash64 of data and returns it as hex,
// truncated to hexLen characters when 0 < hexLen < 16.
func ContentHash(data []byte, hexLen int) string {
	full := hex.EncodeToString(binary.BigEndian.AppendUint64(nil, xxhash.Sum64(data)))
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}

// FileName builds "<base>.<w>x<h>.<hash8>.<ext>" for a payload, where base
// is the last element of key. The short hash keeps names readable; the
// full hash lives in the report.
func FileName(key string, w, h int, hash, ext string) string {
	short := hash
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s.%dx%d.%s.%s", path.Base(key), w, h, short, ext)
}
