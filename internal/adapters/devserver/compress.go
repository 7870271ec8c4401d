package devserver

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/andybalholm/brotli"
)

// compressible lists the extensions worth brotli-compressing.
var compressible = map[string]bool{
	"":      true,
	".html": true,
	".css":  true,
	".js":   true,
	".map":  true,
	".svg":  true,
	".json": true,
	".txt":  true,
	".xml":  true,
}

// compress brotli-encodes text responses for clients that accept br.
// Range requests are served as is: their offsets refer to the uncompressed file.
func compress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		if r.Header.Get("Range") != "" || !acceptsBrotli(r) || !compressible[path.Ext(r.URL.Path)] {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
		defer bw.Close() //nolint:errcheck // the client may already be gone

		next.ServeHTTP(&brotliResponseWriter{ResponseWriter: w, w: bw}, r)
	})
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}

type brotliResponseWriter struct {
	http.ResponseWriter
	w           io.Writer
	wroteHeader bool
}

func (b *brotliResponseWriter) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.wroteHeader = true
	b.Header().Del("Content-Length")
	b.ResponseWriter.WriteHeader(code)
}

func (b *brotliResponseWriter) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}
	return b.w.Write(p)
}
