// SPDX-License-Identifier: Apache-2.0

package http

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"

	"github.com/kispace/kispace-server/internal/utils"
)

// Writer and reader pools keep per-request gzip allocations off the hot path.
var (
	gzipWriterPool = sync.Pool{
		New: func() any {
			return gzip.NewWriter(nil)
		},
	}
	gzipReaderPool = sync.Pool{
		New: func() any {
			return new(gzip.Reader)
		},
	}
)

// withGzip provides transparent gzip support in both directions.
//
// A request body sent with "Content-Encoding: gzip" is decoded before the
// handlers see it; an undecodable body is a 400. Responses are compressed
// whenever the client advertises gzip in "Accept-Encoding", which matters
// most for the JSON API and the SPA bundle.
func withGzip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			reader := gzipReaderPool.Get().(*gzip.Reader)
			if err := reader.Reset(r.Body); err != nil {
				gzipReaderPool.Put(reader)
				utils.WriteError(w, "invalid gzip data", http.StatusBadRequest)
				return
			}

			r.Body = &pooledBodyReader{Reader: reader}
			r.Header.Del("Content-Encoding")
			r.ContentLength = -1
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		writer := gzipWriterPool.Get().(*gzip.Writer)
		writer.Reset(w)

		gw := &gzipResponseWriter{ResponseWriter: w, gzipWriter: writer}

		next.ServeHTTP(gw, r)

		writer.Close()
		gzipWriterPool.Put(writer)
	})
}

// pooledBodyReader returns the underlying gzip.Reader to the pool on Close.
type pooledBodyReader struct {
	*gzip.Reader
}

func (p *pooledBodyReader) Close() error {
	err := p.Reader.Close()
	gzipReaderPool.Put(p.Reader)
	return err
}

// gzipResponseWriter routes the response body through a gzip writer and
// stamps the encoding headers on the first write.
type gzipResponseWriter struct {
	http.ResponseWriter

	gzipWriter  *gzip.Writer
	wroteHeader bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.Header().Set("Content-Encoding", "gzip")
		// The compressed length is unknown until the stream is flushed.
		w.Header().Del("Content-Length")
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.gzipWriter.Write(data)
}
