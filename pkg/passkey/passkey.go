// Package passkey implements the reversible encoding applied to the admin
// passkey before it is handed back to the client for local storage. The
// transform is obfuscation, not encryption: it carries no confidentiality
// guarantee and the only real gate is the server-side equality check.
package passkey

import (
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrMalformed = errors.New("passkey: malformed encoded value")

// Encode returns the storable form of a passkey.
// Decode(Encode(x)) == x for any string x.
func Encode(key string) string {
	return base64.StdEncoding.EncodeToString([]byte(key))
}

// Decode reverses Encode. Values that were not produced by Encode
// fail with ErrMalformed rather than decoding to garbage.
func Decode(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return string(raw), nil
}
