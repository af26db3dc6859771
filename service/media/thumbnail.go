// Package media renders WebP thumbnails for product images.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Options control thumbnail size and encoding.
type Options struct {
	Width   int
	Height  int
	Quality float32
	// Crop fills the box, cutting the overflow; otherwise the image is fit inside.
	Crop bool
}

func DefaultOptions() Options {
	return Options{Width: 400, Height: 400, Quality: 80}
}

// Thumbnail decodes an image from src and writes a WebP thumbnail to dst.
func Thumbnail(src io.Reader, dst io.Writer, opt Options) error {
	if opt.Width <= 0 || opt.Height <= 0 {
		return fmt.Errorf("thumbnail size must be positive, got %dx%d", opt.Width, opt.Height)
	}
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if opt.Crop {
		img = imaging.Fill(img, opt.Width, opt.Height, imaging.Center, imaging.Lanczos)
	} else {
		img = imaging.Fit(img, opt.Width, opt.Height, imaging.Lanczos)
	}
	if err := webp.Encode(dst, img, &webp.Options{Quality: opt.Quality}); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}

// ThumbnailFile writes the thumbnail of srcPath to dstPath.
func ThumbnailFile(srcPath, dstPath string, opt Options) error {
	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	if err := Thumbnail(in, out, opt); err != nil {
		out.Close()
		os.Remove(dstPath)
		return err
	}
	return out.Close()
}

var imageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".tif": true, ".tiff": true}

// ThumbName maps an image file name to its thumbnail name.
func ThumbName(name string) string {
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)) + ".webp"
}

// Result summarizes a directory run.
type Result struct {
	Written int
	Failed  map[string]error
}

// ThumbnailDir converts every image in srcDir (not recursive) into dstDir.
func ThumbnailDir(srcDir, dstDir string, opt Options) (Result, error) {
	res := Result{Failed: map[string]error{}}
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return res, err
	}
	for _, e := range entries {
		if e.IsDir() || !imageExt[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		src := filepath.Join(srcDir, e.Name())
		if err := ThumbnailFile(src, filepath.Join(dstDir, ThumbName(e.Name())), opt); err != nil {
			res.Failed[e.Name()] = err
			continue
		}
		res.Written++
	}
	return res, nil
}
