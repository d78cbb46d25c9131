package common_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/waveboard-app/waveboard-backend/common"
)

func TestSafeExt(t *testing.T) {
	cases := map[string]string{
		"photo.PNG":          ".png",
		"archive.tar.gz":     ".gz",
		"noext":              "",
		"trailing.":          "",
		"../../etc/passwd":   "",
		"weird.p g":          "",
		"ok.jpeg":            ".jpeg",
		"digits.mp4":         ".mp4",
		"/abs/path/pic.webp": ".webp",
	}
	for in, want := range cases {
		require.Equal(t, want, common.SafeExt(in), "input %q", in)
	}
}

func TestGetIPAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	require.Equal(t, "10.0.0.1:1234", common.GetIPAddr(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	require.Equal(t, "203.0.113.9", common.GetIPAddr(r))
}
