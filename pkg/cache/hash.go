package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKey is the key for one rendered artifact of a scene:
// "artifact:<format>:<sha256>". opts is any JSON-encodable value describing
// the render settings; nil is allowed.
func ArtifactKey(sceneHash, format string, opts any) string {
	return key("artifact:"+format, sceneHash, opts)
}

// key joins prefix with the hash of parts encoded as one JSON array.
// Unencodable parts hash as null.
func key(prefix string, parts ...any) string {
	h := sha256.New()
	if err := json.NewEncoder(h).Encode(parts); err != nil {
		h.Reset()
		h.Write([]byte("null"))
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
