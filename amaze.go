/*
Package amaze is a library for playing aMaze tile puzzles.

A game is started from a maze file. Each tile's rotation is tracked from the
moment the file is loaded and stored in a sqlite database so that a game can
be resumed, reset back to how the maze started, or exported as a played maze
file.
*/
package amaze

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/amaze/format"
	"github.com/bodgit/amaze/render"
	"github.com/bodgit/amaze/tile"
)

var (
	// ErrNoGame is returned by operations that need a game to be loaded.
	ErrNoGame = errors.New("amaze: no game loaded")
	// ErrUnknownSession is returned when a session cannot be found.
	ErrUnknownSession = errors.New("amaze: unknown session")
	// ErrUnknownTile is returned for a tile ID not present in the maze.
	ErrUnknownTile = errors.New("amaze: unknown tile")
	// ErrMazeChanged is returned when resuming a session whose maze file
	// no longer has the same content.
	ErrMazeChanged = errors.New("amaze: maze file has changed")
)

// Game is a single game session. It is not safe for concurrent use.
type Game struct {
	db     *DB
	logger *log.Logger

	session string
	tiles   *tile.Collection
}

// New returns a Game with no maze loaded, storing its state in the sqlite
// database in file.
func New(file string, logger *log.Logger) (*Game, error) {
	db, err := NewDB(file)
	if err != nil {
		return nil, err
	}
	return &Game{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying database.
func (g *Game) Close() error {
	return g.db.Close()
}

func decode(path string) (*tile.Collection, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	c, err := format.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, "", err
	}

	return c, fmt.Sprintf("%X", h.Sum(nil)), nil
}

func (g *Game) logDuplicates(path string, c *tile.Collection) {
	seen := make(map[tile.ID]struct{})
	for i := tile.ReadPos(0); int(i) < c.Len(); i++ {
		id := c.IDAt(i)
		if _, ok := seen[id]; ok {
			g.logger.Printf("Tile %d repeated at record %d in \"%s\"\n", id, i, path)
		}
		seen[id] = struct{}{}
	}
}

// NewGame discards any current game and starts a new one from the maze file
// at path, returning the new session ID. On error the current game is left
// untouched.
func (g *Game) NewGame(path string) (string, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	c, sha, err := decode(path)
	if err != nil {
		return "", err
	}

	if c.Played() {
		g.logger.Printf("\"%s\" has been played before\n", path)
	}
	g.logDuplicates(path, c)

	for i := tile.ReadPos(0); int(i) < c.Len(); i++ {
		if r := c.RotationAt(i); r < 0 || r > 3 {
			g.logger.Printf("Record %d has rotation %d, using %d\n", i, r, (r%4+4)%4)
		}
	}
	if err := c.SeedRotations(); err != nil {
		return "", err
	}

	b := new(bytes.Buffer)
	if err := render.EncodeThumbnail(b, c); err != nil {
		return "", err
	}

	maze, err := g.db.addMaze(sha, path, c.Played(), c.Len(), b.Bytes())
	if err != nil {
		return "", err
	}

	session, err := g.db.addSession(maze, c.Tiles())
	if err != nil {
		return "", err
	}

	g.session, g.tiles = session, c

	return session, nil
}

// Resume reloads the maze for session and restores the rotations saved for
// it.
func (g *Game) Resume(session string) error {
	path, sha, err := g.db.findSession(session)
	if err != nil {
		return err
	}

	c, h, err := decode(path)
	if err != nil {
		return err
	}
	if h != sha {
		return fmt.Errorf("%w: \"%s\"", ErrMazeChanged, path)
	}

	saved, err := g.db.loadRotations(session)
	if err != nil {
		return err
	}

	for _, t := range c.Tiles() {
		r, ok := saved[t.ID()]
		if !ok {
			return fmt.Errorf("%w: no rotation saved for tile %d in %s", ErrUnknownSession, t.ID(), session)
		}
		if err := t.SetRotation(r.original); err != nil {
			return err
		}
		if err := t.SetRotation(r.current); err != nil {
			return err
		}
	}

	g.session, g.tiles = session, c

	return nil
}

// Session returns the current session ID, or an empty string if no game is
// loaded.
func (g *Game) Session() string {
	return g.session
}

// Tiles returns the current maze, or nil if no game is loaded.
func (g *Game) Tiles() *tile.Collection {
	return g.tiles
}

// Rotate turns the tile id by one quarter turn and saves the result.
func (g *Game) Rotate(id tile.ID) (tile.Rotation, error) {
	if g.tiles == nil {
		return 0, ErrNoGame
	}

	t := g.tiles.Get(id)
	if t == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTile, id)
	}

	if err := t.RotateTile(); err != nil {
		return 0, err
	}

	r, _ := t.Rotation()
	return r, g.Save()
}

// Reset returns every tile to its original rotation and saves the result.
func (g *Game) Reset() error {
	if g.tiles == nil {
		return ErrNoGame
	}

	g.tiles.Reset()

	return g.Save()
}

// Save stores the rotation of every tile.
func (g *Game) Save() error {
	if g.tiles == nil {
		return ErrNoGame
	}
	return g.db.saveRotations(g.session, g.tiles.Tiles())
}

// Export writes the current game to path as a played maze file, with each
// record carrying the current rotation of its tile.
func (g *Game) Export(path string) error {
	if g.tiles == nil {
		return ErrNoGame
	}

	records := format.Records(g.tiles)
	for i := range records {
		if r, ok := g.tiles.Get(records[i].ID).Rotation(); ok {
			records[i].Rotation = int32(r)
		}
	}

	return format.Create(path, format.Played, records)
}

// Thumbnail returns the PNG thumbnail stored for the current maze.
func (g *Game) Thumbnail() ([]byte, error) {
	if g.tiles == nil {
		return nil, ErrNoGame
	}
	return g.db.Thumbnail(g.session)
}
