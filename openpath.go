package cytodiff

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// gsObject holds a fully fetched Google Storage object. FCS parsing needs
// arbitrary seeks (the header points backward and forward into the file), and
// a range-reader proxy cannot honor io.SeekEnd, so the object is slurped once
// and served from memory. Cytometry inputs are tens of megabytes at most.
type gsObject struct {
	*bytes.Reader
}

func (g gsObject) Close() error { return nil }

// MaybeOpenFromGoogleStorage opens path directly from Google Storage if it
// has a gs:// prefix and a client is provided; otherwise it falls back to the
// local filesystem. The returned size is the full object or file size.
func MaybeOpenFromGoogleStorage(path string, client *storage.Client) (ReadSeekCloser, int64, error) {
	if client != nil && strings.HasPrefix(path, "gs://") {
		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 {
			return nil, 0, fmt.Errorf("tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
		}
		bucketName := pathParts[0]
		pathName := pathParts[1]

		// Open the bucket with default credentials
		handle := client.Bucket(bucketName).Object(pathName)

		rc, err := handle.NewReader(context.Background())
		if err != nil {
			return nil, 0, wrapPathErr(path, err)
		}
		defer rc.Close()

		raw, err := io.ReadAll(rc)
		if err != nil {
			return nil, 0, wrapPathErr(path, err)
		}

		return gsObject{bytes.NewReader(raw)}, int64(len(raw)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, fstat.Size(), nil
}

// wrapPathErr annotates an IO error with the path that produced it while
// keeping the error chain intact: callers distinguish an absent artifact
// from any other failure via errors.Is.
func wrapPathErr(path string, err error) error {
	return pfx.Err(fmt.Errorf("%s: %w", path, err))
}
