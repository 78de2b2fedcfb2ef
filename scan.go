package amaze

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/amaze/format"
	"github.com/bodgit/amaze/render"
)

const (
	scanWorkers = 10
	maxMazeSize = 1 << 20
)

func (g *Game) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			// Anything bigger needs thousands of lines per tile
			if info.Size() > maxMazeSize {
				g.logger.Printf("Skipping \"%s\", larger than %d bytes\n", file, maxMazeSize)
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (db *DB) importFile(file string) (bool, error) {
	c, sha, err := decode(file)
	switch {
	case errors.Is(err, format.ErrInvalidFormat), errors.Is(err, format.ErrTruncated), errors.Is(err, format.ErrCorruptRecord):
		return false, nil
	case err != nil:
		return false, err
	}

	if err := c.SeedRotations(); err != nil {
		return false, err
	}

	b := new(bytes.Buffer)
	if err := render.EncodeThumbnail(b, c); err != nil {
		return false, err
	}

	if _, err := db.addMaze(sha, file, c.Played(), c.Len(), b.Bytes()); err != nil {
		return false, err
	}

	return true, nil
}

func (g *Game) fileWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			ok, err := g.db.importFile(file)
			if err != nil {
				errc <- err
				return
			}
			if ok {
				g.logger.Printf("Imported \"%s\"\n", file)
			} else {
				g.logger.Printf("Skipping \"%s\", not a valid maze file\n", file)
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and records every valid maze file found in the database,
// along with its thumbnail. Files that are not maze files are skipped.
func (g *Game) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := g.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < scanWorkers; i++ {
		errc, err := g.fileWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}

// Mazes returns the number of mazes recorded in the database.
func (db *DB) Mazes() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM maze").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
