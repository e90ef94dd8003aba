package network

import (
	"net/http"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/ballot/lib/common"
)

type HTTP2ErrorLog15Writer struct {
	l logging.Logger
}

func (w HTTP2ErrorLog15Writer) Write(b []byte) (int, error) {
	w.l.Error("error", "error", string(b))
	return len(b), nil
}

type HTTP2ResponseLog15Writer struct {
	w      http.ResponseWriter
	status int
	size   int
}

func (l *HTTP2ResponseLog15Writer) Header() http.Header {
	return l.w.Header()
}

func (l *HTTP2ResponseLog15Writer) Write(b []byte) (int, error) {
	if l.status == 0 {
		l.status = http.StatusOK
	}
	size, err := l.w.Write(b)
	l.size += size
	return size, err
}

func (l *HTTP2ResponseLog15Writer) WriteHeader(s int) {
	l.w.WriteHeader(s)
	l.status = s
}

func (l *HTTP2ResponseLog15Writer) Status() int {
	return l.status
}

func (l *HTTP2ResponseLog15Writer) Size() int {
	return l.size
}

func (l *HTTP2ResponseLog15Writer) Flush() {
	if f, ok := l.w.(http.Flusher); ok {
		f.Flush()
	}
}

type HTTP2Log15Handler struct {
	log     logging.Logger
	handler http.Handler
}

var HeaderKeyFiltered = []string{
	"Content-Length",
	"Content-Type",
	"Accept",
	"Accept-Encoding",
	"User-Agent",
}

// ServeHTTP logs twice, when the request is received and when the response
// is sent; both have the same request id.
func (l HTTP2Log15Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	uid := common.GenerateUUID()

	uri := r.RequestURI
	if r.ProtoMajor == 2 && r.Method == http.MethodConnect {
		uri = r.Host
	}
	if uri == "" {
		uri = r.URL.RequestURI()
	}

	header := http.Header{}
	for key, value := range r.Header {
		if _, found := common.InStringArray(HeaderKeyFiltered, key); found {
			continue
		}
		header[key] = value
	}

	l.log.Debug(
		"request",
		"content-length", r.ContentLength,
		"content-type", r.Header.Get("Content-Type"),
		"headers", header,
		"host", r.Host,
		"id", uid,
		"method", r.Method,
		"proto", r.Proto,
		"remote", r.RemoteAddr,
		"uri", uri,
		"user-agent", r.UserAgent(),
	)

	writer := &HTTP2ResponseLog15Writer{w: w}
	l.handler.ServeHTTP(writer, r)

	l.log.Debug(
		"response",
		"id", uid,
		"status", writer.Status(),
		"size", writer.Size(),
		"elapsed", time.Since(begin),
	)
}
