// Command tlshsum prints the TLSH digest of one or more files, in the
// style of md5sum/sha256sum.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tlsh-go/tlsh"
	"github.com/tlsh-go/tlsh/tlshio"
)

var variantName = flag.String("variant", "normal", "digest variant: short, normal, normal-long-checksum, long, long-checksum")

func newGenerator() (*tlsh.Generator, error) {
	switch *variantName {
	case "short":
		return tlsh.NewShort(), nil
	case "normal":
		return tlsh.NewNormal(), nil
	case "normal-long-checksum":
		return tlsh.NewNormalLongChecksum(), nil
	case "long":
		return tlsh.NewLong(), nil
	case "long-checksum":
		return tlsh.NewLongChecksum(), nil
	default:
		return nil, fmt.Errorf("unknown variant %q", *variantName)
	}
}

func main() {
	flag.Parse()
	log := logrus.New()

	if flag.NArg() == 0 {
		log.Fatal("usage: tlshsum [-variant name] file [file...]")
	}

	exitCode := 0
	for _, path := range flag.Args() {
		digest, err := hashFile(path)
		if err != nil {
			log.WithField("file", path).Error(err)
			exitCode = 1
			continue
		}
		fmt.Printf("%s  %s\n", digest, path)
	}
	os.Exit(exitCode)
}

func hashFile(path string) (tlsh.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return tlsh.Digest{}, err
	}
	defer f.Close()

	gen, err := newGenerator()
	if err != nil {
		return tlsh.Digest{}, err
	}

	if _, err := tlshio.Copy(gen, f); err != nil {
		return tlsh.Digest{}, err
	}

	return gen.Finalize()
}
