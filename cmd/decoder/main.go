// Command decoder reads a PNG file, decodes it with this module's core
// decoder, and re-encodes it through the standard library's image/png
// so the result can be inspected visually.
package main

import (
	"flag"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	pngdecode "github.com/vparker/pngdecode"
)

func main() {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatal(err)
	}
	defaultFilePath := filepath.Join(home, "Pictures", "smiley.png")

	var pngCLI string
	flag.StringVar(&pngCLI, "png", defaultFilePath, "png file to decode")

	var outCLI string
	flag.StringVar(&outCLI, "out", "image.png", "where to write the re-encoded verification image")

	var rescale bool
	flag.BoolVar(&rescale, "policy-rescale", true, "rescale sub-8-bit grayscale samples to the full 8-bit range")

	var strictAncillary bool
	flag.BoolVar(&strictAncillary, "strict-ancillary", false, "reject unrecognized ancillary chunks instead of skipping them")

	flag.Parse()

	file, err := os.Open(pngCLI)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	log.Printf("decoding %s\n", pngCLI)

	opts := pngdecode.DefaultOptions()
	opts.RescaleSubByteGray = rescale
	opts.StrictAncillary = strictAncillary

	img, err := pngdecode.DecodeWithOptions(file, opts)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	log.Printf("decoded %dx%d image\n", img.Width, img.Height)

	f, err := os.Create(outCLI)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := png.Encode(f, pngdecode.ToImageNRGBA(img)); err != nil {
		log.Fatal(errors.Wrap(err, "re-encoding verification image"))
	}
	log.Printf("wrote %s\n", outCLI)
}
