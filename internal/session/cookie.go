package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CookieName carries the signed session id in the browser.
const CookieName = "psid"

// SignValue returns "sid.hexdigest" where the digest is an HMAC-SHA256 of
// the session id under the process-wide session secret.
func SignValue(sid, secret string) string {
	return sid + "." + sign(sid, secret)
}

// VerifyValue splits and checks a signed cookie value, returning the
// embedded session id. A malformed or tampered value yields ok=false.
func VerifyValue(value, secret string) (sid string, ok bool) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 || i == len(value)-1 {
		return "", false
	}

	sid, mac := value[:i], value[i+1:]
	if !hmac.Equal([]byte(mac), []byte(sign(sid, secret))) {
		return "", false
	}
	return sid, true
}

func sign(sid, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(sid))
	return hex.EncodeToString(h.Sum(nil))
}
