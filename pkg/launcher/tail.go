package launcher

import (
	"io"
	"os"

	"github.com/valyala/bytebufferpool"
)

// readTail returns at most limit trailing bytes of the file at path. A
// non-positive limit reads the whole file. Read errors yield what was read.
func readTail(path string, limit int) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		if info, err := f.Stat(); err == nil && info.Size() > int64(limit) {
			if _, err := f.Seek(info.Size()-int64(limit), io.SeekStart); err != nil {
				return ""
			}
		}
		r = io.LimitReader(f, int64(limit))
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.ReadFrom(r)
	return buf.String()
}
