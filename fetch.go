package ort

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// FetchKind classifies a FetchError.
type FetchKind int

const (
	// FetchIO is a network or filesystem failure.
	FetchIO FetchKind = iota

	// FetchHTTPStatus is a non-2xx response.
	FetchHTTPStatus

	// FetchMissingContentLength is a response without a declared size.
	FetchMissingContentLength

	// FetchCopySize is a transfer whose byte count differs from the
	// declared size.
	FetchCopySize
)

func (k FetchKind) String() string {
	switch k {
	case FetchIO:
		return "io"
	case FetchHTTPStatus:
		return "http_status"
	case FetchMissingContentLength:
		return "missing_content_length"
	case FetchCopySize:
		return "copy_size"
	default:
		return "FetchKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// FetchError describes why a model download failed.
// Only the fields relevant to Kind are set.
type FetchError struct {
	Kind FetchKind

	// URL is the source locator.
	URL string

	// Err is the underlying failure for FetchIO.
	Err error

	// StatusCode is the response status for FetchHTTPStatus.
	StatusCode int

	// Expected is the declared size for FetchCopySize.
	Expected uint64

	// Written is the number of bytes written for FetchCopySize.
	Written uint64
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("error downloading %s: server returned status %d", e.URL, e.StatusCode)
	case FetchMissingContentLength:
		return fmt.Sprintf("error getting Content-Length from HTTP GET %s", e.URL)
	case FetchCopySize:
		return fmt.Sprintf("error copying data to file: expected %d length, but got %d", e.Expected, e.Written)
	default:
		return fmt.Sprintf("error downloading %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// FetchProgress reports the state of a running download.
type FetchProgress struct {
	// AttemptID identifies the fetch attempt in logs.
	AttemptID string

	// URL is the source locator.
	URL string

	// Dest is the destination path.
	Dest string

	// BytesTotal is the declared transfer size.
	BytesTotal uint64

	// BytesWritten is the number of bytes written so far.
	BytesWritten uint64
}

// Fetcher downloads model artifacts and verifies their length against the
// declared transfer size.
//
// Fetch performs blocking I/O on the calling goroutine and does not retry.
// Concurrent Fetch calls for the same destination are not coordinated; use
// Materialize when several callers may want the same file.
type Fetcher struct {
	// httpClient is used for all downloads.
	httpClient HTTPClient

	// logger receives diagnostic messages. May be nil.
	logger Logger

	// progressFn receives progress updates. May be nil.
	progressFn func(FetchProgress)

	// lockTimeout bounds the wait for Materialize's file lock.
	lockTimeout time.Duration

	// metrics records fetch outcomes.
	metrics *fetchMetrics
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Fetcher{
		httpClient:  o.httpClient,
		logger:      o.logger,
		progressFn:  o.progressFn,
		lockTimeout: o.lockTimeout,
		metrics:     newFetchMetrics(o.registerer),
	}
}

// Fetch downloads locator to dest.
//
// The response must declare its size in Content-Length; the file at dest is
// complete only if exactly that many bytes were written. On a size mismatch
// the partial file is left at dest and must be treated as unusable.
//
// Failures are returned as a *DownloadError wrapping a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, locator, dest string) error {
	attemptID := uuid.NewString()
	start := time.Now()

	if f.logger != nil {
		f.logger.Debug("fetching model", "attempt", attemptID, "url", locator, "dest", dest)
	}

	written, ferr := f.fetch(ctx, attemptID, locator, dest)

	f.metrics.duration.Observe(time.Since(start).Seconds())
	f.metrics.bytes.Add(float64(written))

	if ferr != nil {
		f.metrics.fetches.WithLabelValues(ferr.Kind.String()).Inc()
		if f.logger != nil {
			f.logger.Warn("model fetch failed", "attempt", attemptID, "url", locator, "error", ferr.Error())
		}
		return newDownloadError(ferr)
	}

	f.metrics.fetches.WithLabelValues(outcomeOK).Inc()
	if f.logger != nil {
		f.logger.Info("model fetched", "attempt", attemptID, "url", locator, "dest", dest, "bytes", written)
	}
	return nil
}

// fetch performs one download and returns the number of bytes written.
func (f *Fetcher) fetch(ctx context.Context, attemptID, locator, dest string) (uint64, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return 0, &FetchError{Kind: FetchIO, URL: locator, Err: fmt.Errorf("creating request: %w", err)}
	}
	// Ask for the raw bytes so the declared length is the on-disk length.
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, &FetchError{Kind: FetchIO, URL: locator, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &FetchError{Kind: FetchHTTPStatus, URL: locator, StatusCode: resp.StatusCode}
	}

	if resp.ContentLength < 0 {
		return 0, &FetchError{Kind: FetchMissingContentLength, URL: locator}
	}
	expected := uint64(resp.ContentLength)

	out, err := os.Create(dest)
	if err != nil {
		return 0, &FetchError{Kind: FetchIO, URL: locator, Err: err}
	}

	var body io.Reader = resp.Body
	if f.progressFn != nil {
		var written uint64
		body = &progressReader{reader: resp.Body, onProgress: func(delta int64) {
			written += uint64(delta)
			f.progressFn(FetchProgress{
				AttemptID:    attemptID,
				URL:          locator,
				Dest:         dest,
				BytesTotal:   expected,
				BytesWritten: written,
			})
		}}
	}

	written, err := copyBody(out, body)
	closeErr := out.Close()
	if err != nil {
		return written, &FetchError{Kind: FetchIO, URL: locator, Err: err}
	}
	if closeErr != nil {
		return written, &FetchError{Kind: FetchIO, URL: locator, Err: closeErr}
	}

	if ferr := verifyCopy(expected, written); ferr != nil {
		ferr.URL = locator
		return written, ferr
	}
	return written, nil
}

// copyBody streams src to dst and returns the number of bytes written.
// A body that ends before its declared length is treated as finished; the
// shortfall is reported by verifyCopy.
func copyBody(dst io.Writer, src io.Reader) (uint64, error) {
	n, err := io.Copy(dst, truncationReader{src})
	return uint64(n), err
}

// verifyCopy compares the bytes written against the declared size.
func verifyCopy(expected, written uint64) *FetchError {
	if expected != written {
		return &FetchError{Kind: FetchCopySize, Expected: expected, Written: written}
	}
	return nil
}

// truncationReader turns io.ErrUnexpectedEOF into io.EOF.
type truncationReader struct {
	r io.Reader
}

func (t truncationReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return n, err
}

// progressReader wraps an io.Reader and reports progress as bytes are read.
type progressReader struct {
	reader     io.Reader
	onProgress func(delta int64)
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.reader.Read(p)
	if n > 0 && pr.onProgress != nil {
		pr.onProgress(int64(n))
	}
	return
}

// Materialize makes the artifact at locator available in dir and returns its
// path. The file name is the last path segment of locator. An existing file
// is returned as is; a failed download leaves nothing at the returned path.
// Concurrent calls for the same file, from this or other processes, are
// serialized with a lock file next to it.
//
// Failures are returned as a *DownloadError wrapping a *FetchError.
func (f *Fetcher) Materialize(ctx context.Context, locator, dir string) (string, error) {
	name, err := fileNameFromURL(locator)
	if err != nil {
		return "", newDownloadError(&FetchError{Kind: FetchIO, URL: locator, Err: err})
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", newDownloadError(&FetchError{Kind: FetchIO, URL: locator, Err: fmt.Errorf("creating model directory: %w", err)})
	}
	dest := filepath.Join(dir, name)

	lock, err := newFileLock(dest+".lock", f.lockTimeout)
	if err != nil {
		return "", newDownloadError(&FetchError{Kind: FetchIO, URL: locator, Err: fmt.Errorf("creating lock: %w", err)})
	}
	if err := lock.Lock(); err != nil {
		lock.Unlock()
		return "", newDownloadError(&FetchError{Kind: FetchIO, URL: locator, Err: fmt.Errorf("another fetch holds %s: %w", dest, err)})
	}
	defer lock.Unlock()

	if _, err := os.Stat(dest); err == nil {
		if f.logger != nil {
			f.logger.Debug("model already present", "url", locator, "path", dest)
		}
		return dest, nil
	}

	// Only a verified transfer is renamed onto dest.
	tmp := dest + ".part"
	if err := f.Fetch(ctx, locator, tmp); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", newDownloadError(&FetchError{Kind: FetchIO, URL: locator, Err: fmt.Errorf("moving download into place: %w", err)})
	}
	return dest, nil
}

// fileNameFromURL returns the last path segment of locator.
func fileNameFromURL(locator string) (string, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("URL %q has no file name", locator)
	}
	return name, nil
}
