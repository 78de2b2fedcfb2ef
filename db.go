package amaze

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/bodgit/amaze/tile"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DB persists mazes and the tile rotations of each game played on them.
type DB struct {
	db *sql.DB

	// Serialises maze inserts when scanning
	mu sync.Mutex
}

// NewDB opens or creates the sqlite database in file.
func NewDB(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS maze (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, path TEXT NOT NULL, played INTEGER NOT NULL, tiles INTEGER NOT NULL, thumbnail BLOB)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS session (id TEXT PRIMARY KEY NOT NULL, maze_id INTEGER NOT NULL, created INTEGER NOT NULL, FOREIGN KEY(maze_id) REFERENCES maze(id))"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS rotation (session_id TEXT NOT NULL, tile_id INTEGER NOT NULL, original INTEGER NOT NULL, current INTEGER NOT NULL, PRIMARY KEY(session_id, tile_id), FOREIGN KEY(session_id) REFERENCES session(id))"); err != nil {
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) addMaze(sha, path string, played bool, tiles int, thumbnail []byte) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM maze WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO maze (sha1, path, played, tiles, thumbnail) VALUES (?, ?, ?, ?, ?)", sha, path, played, tiles, thumbnail)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		// Same content may have moved
		if _, err := db.db.Exec("UPDATE maze SET path = ? WHERE id = ?", path, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

// addSession creates a session for maze along with the rotations of its
// tiles. Either both are stored or neither is.
func (db *DB) addSession(maze int64, tiles []*tile.Tile) (string, error) {
	tx, err := db.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := uuid.New().String()
	if _, err := tx.Exec("INSERT INTO session (id, maze_id, created) VALUES (?, ?, ?)", id, maze, time.Now().Unix()); err != nil {
		return "", err
	}

	if err := insertRotations(tx, id, tiles); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	return id, nil
}

func (db *DB) findSession(session string) (string, string, error) {
	var path, sha string
	switch err := db.db.QueryRow("SELECT m.path, m.sha1 FROM session AS s JOIN maze AS m ON s.maze_id = m.id WHERE s.id = ?", session).Scan(&path, &sha); err {
	case sql.ErrNoRows:
		return "", "", fmt.Errorf("%w: %s", ErrUnknownSession, session)
	case nil:
		return path, sha, nil
	default:
		return "", "", err
	}
}

func insertRotations(tx *sql.Tx, session string, tiles []*tile.Tile) error {
	for _, t := range tiles {
		current, ok := t.Rotation()
		if !ok {
			continue
		}
		original, _ := t.OriginalRotation()
		if _, err := tx.Exec("INSERT OR REPLACE INTO rotation (session_id, tile_id, original, current) VALUES (?, ?, ?, ?)", session, int(t.ID()), int(original), int(current)); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) saveRotations(session string, tiles []*tile.Tile) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertRotations(tx, session, tiles); err != nil {
		return err
	}

	return tx.Commit()
}

type rotations struct {
	original, current tile.Rotation
}

func (db *DB) loadRotations(session string) (map[tile.ID]rotations, error) {
	rows, err := db.db.Query("SELECT tile_id, original, current FROM rotation WHERE session_id = ?", session)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[tile.ID]rotations)
	for rows.Next() {
		var id, original, current int
		if err := rows.Scan(&id, &original, &current); err != nil {
			return nil, err
		}
		m[tile.ID(id)] = rotations{tile.Rotation(original), tile.Rotation(current)}
	}

	return m, rows.Err()
}

// Thumbnail returns the PNG thumbnail stored for the maze played in session.
func (db *DB) Thumbnail(session string) ([]byte, error) {
	var thumbnail []byte
	switch err := db.db.QueryRow("SELECT m.thumbnail FROM session AS s JOIN maze AS m ON s.maze_id = m.id WHERE s.id = ?", session).Scan(&thumbnail); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, session)
	case nil:
		return thumbnail, nil
	default:
		return nil, err
	}
}
