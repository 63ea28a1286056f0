package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"
)

// compressible lists the extensions that get a .gz sibling.
var compressible = map[string]bool{
	".html": true,
	".css":  true,
	".js":   true,
	".json": true,
	".csv":  true,
	".svg":  true,
	".txt":  true,
	".xml":  true,
}

// Compressible reports whether a file of this name is worth precompressing.
func Compressible(name string) bool {
	return compressible[strings.ToLower(filepath.Ext(name))]
}

// Precompress writes a gzip sibling next to every compressible file under
// dir and returns how many were written. Existing .gz files are replaced.
func Precompress(ctx context.Context, dir string) (int, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && Compressible(p) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("precompress: %w", err)
	}

	var written atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for _, p := range paths {
		p := p
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := gzipFile(p); err != nil {
				return err
			}
			written.Add(1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return int(written.Load()), err
	}
	return int(written.Load()), nil
}

func gzipFile(src string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("precompress %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(src + ".gz")
	if err != nil {
		return fmt.Errorf("precompress %s: %w", src, err)
	}
	zw, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		out.Close()
		return err
	}
	zw.Name = filepath.Base(src)
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		out.Close()
		return fmt.Errorf("precompress %s: %w", src, err)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("precompress %s: %w", src, err)
	}
	return out.Close()
}

// RemoveSiblings deletes every .gz file under dir that sits next to its
// uncompressed source, so a build without precompression leaves no stale
// copies behind. It returns how many were removed.
func RemoveSiblings(dir string) (int, error) {
	removed := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".gz") {
			return err
		}
		if _, err := os.Stat(strings.TrimSuffix(p, ".gz")); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if err := os.Remove(p); err != nil {
			return err
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("remove stale .gz files: %w", err)
	}
	return removed, nil
}
