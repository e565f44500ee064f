// Package tlshio adapts tlsh.Generator to the io.Writer/io.Reader idioms,
// the same thin-wrapper role gtank/blake2's cmd/blake2s plays with
// io.Copy, but factored out as a reusable package since TLSH callers
// commonly want logging of how much was fed into a generator (file
// hashing over many inputs, streamed uploads, and so on).
package tlshio

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tlsh-go/tlsh"
)

// Copy streams all of r into gen and returns the number of bytes copied,
// the same contract as io.Copy. It logs at debug level once the copy
// completes, including whether the generator's internal counter
// saturated.
func Copy(gen *tlsh.Generator, r io.Reader) (int64, error) {
	n, err := io.Copy(gen, r)
	if err != nil {
		return n, err
	}
	processed, ok := gen.ProcessedLen()
	logrus.WithFields(logrus.Fields{
		"bytes":     n,
		"processed": processed,
		"saturated": !ok,
	}).Debug("tlshio: copy complete")
	return n, nil
}

// TeeCopy streams r into gen while also writing every byte read to w,
// useful for hashing a stream as it is relayed elsewhere without
// buffering it twice.
func TeeCopy(gen *tlsh.Generator, w io.Writer, r io.Reader) (int64, error) {
	return Copy(gen, io.TeeReader(r, w))
}
