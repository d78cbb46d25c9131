package common

import (
	"net/http"
	"path"
	"strings"
)

// GetIPAddr returns the client address, preferring the proxy-set header
func GetIPAddr(r *http.Request) string {

	headerIP := r.Header.Get("X-Forwarded-For")
	if headerIP == "" {
		return r.RemoteAddr
	} else {
		return headerIP
	}
}

// SafeExt extracts a lowercase file extension suitable for use in a stored
// file name. Anything that is not a plain ".xyz" suffix comes back empty.
func SafeExt(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	if len(ext) < 2 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
