package httpx

import (
	"bytes"
	"sync"
)

// bufPool recycles render buffers across requests.
//
//nolint:gochecknoglobals // shared pool
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const maxPooledBufferSize = 1 << 20 // don't retain oversized buffers

func getBuffer() *bytes.Buffer {
	buf, _ := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	bufPool.Put(buf)
}
