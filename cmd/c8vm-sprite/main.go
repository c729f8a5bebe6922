package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
)

// Sprite dimensions in pixels.
const (
	SpriteWidth = 8  // Width of a regular sprite.
	LargeSize   = 16 // Width and height of a large sprite.
)

// Sprite holds the rows of a single sprite, most significant bit leftmost.
// Regular sprites use one byte per row, large sprites two.
type Sprite []byte

func main() {
	config := parseArgs()

	if err := run(config); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *Config) error {
	img, err := loadImage(c.Input)
	if err != nil {
		return err
	}

	w, h := SpriteWidth, c.Height
	if c.Large {
		w, h = LargeSize, LargeSize
	}

	r := img.Bounds()
	if r.Dx() < w || r.Dy() < h {
		return errors.Errorf("source image is too small; expected at least %d x %d pixels", w, h)
	}

	sprites := cut(img, w, h)

	out, close, err := makeWriter(c.Output)
	if err != nil {
		return err
	}

	defer close()

	if c.Raw {
		for _, s := range sprites {
			if _, err := out.Write(s); err != nil {
				return errors.Wrapf(err, "failed to write sprite data")
			}
		}
		return nil
	}

	return writeListing(out, sprites, w)
}

// cut slices img into sprites of w x h pixels, left to right and top to
// bottom. A pixel is set if its red channel is non-zero. Partial sprites
// at the right and bottom edges are skipped.
func cut(img image.Image, w, h int) []Sprite {
	r := img.Bounds()
	cols := r.Dx() / w
	rows := r.Dy() / h
	stride := w / 8

	sprites := make([]Sprite, 0, cols*rows)

	for y := 0; y < rows; y++ {
		sy := r.Min.Y + y*h

		for x := 0; x < cols; x++ {
			sx := r.Min.X + x*w
			s := make(Sprite, stride*h)

			for py := 0; py < h; py++ {
				for px := 0; px < w; px++ {
					red, _, _, _ := img.At(sx+px, sy+py).RGBA()
					if red != 0 {
						s[py*stride+px/8] |= 0x80 >> uint(px%8)
					}
				}
			}

			sprites = append(sprites, s)
		}
	}

	return sprites
}

// writeListing writes the sprites as a commented hex listing.
func writeListing(out io.Writer, sprites []Sprite, w int) error {
	stride := w / 8

	for i, s := range sprites {
		if _, err := fmt.Fprintf(out, "; sprite %d\n", i); err != nil {
			return errors.Wrapf(err, "failed to write listing")
		}

		for row := 0; row < len(s); row += stride {
			line := s[row : row+stride]

			var hex, bits strings.Builder
			for j, b := range line {
				if j > 0 {
					hex.WriteString(", ")
				}
				fmt.Fprintf(&hex, "#%02x", b)

				for k := 7; k >= 0; k-- {
					if b&(1<<uint(k)) != 0 {
						bits.WriteByte('#')
					} else {
						bits.WriteByte('.')
					}
				}
			}

			fmt.Fprintf(out, "%s  ; %s\n", hex.String(), bits.String())
		}

		fmt.Fprintln(out)
	}

	return nil
}

// loadImage loads an image from the given file.
func loadImage(file string) (image.Image, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", file)
	}

	return img, nil
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(file string) (io.Writer, func(), error) {
	if file == "" {
		return os.Stdout, func() {}, nil
	}

	dir, _ := filepath.Split(file)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			return nil, nil, err
		}
	}

	fd, err := os.Create(file)
	if err != nil {
		return nil, nil, err
	}

	return fd, func() { fd.Close() }, nil
}
