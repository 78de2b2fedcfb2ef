package main

import (
	"errors"
	"fmt"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/amaze"
	"github.com/bodgit/amaze/format"
	"github.com/bodgit/amaze/render"
	"github.com/bodgit/amaze/tile"
	"github.com/urfave/cli/v2"
)

const defaultDB = "amaze.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func exitError(err error) error {
	if errors.Is(err, format.ErrInvalidFormat) {
		return cli.NewExitError("Not a valid maze file.", 1)
	}
	return cli.NewExitError(err, 1)
}

func newGame(c *cli.Context) (*amaze.Game, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return amaze.New(c.String("db"), logger)
}

func withSession(c *cli.Context, args int, f func(*amaze.Game) error) error {
	if c.NArg() < args {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	g, err := newGame(c)
	if err != nil {
		return exitError(err)
	}
	defer g.Close()

	if err := g.Resume(c.Args().First()); err != nil {
		return exitError(err)
	}

	if err := f(g); err != nil {
		return exitError(err)
	}

	return nil
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, err := format.Open(c.Args().First())
	if err != nil {
		return exitError(err)
	}

	variant := format.Fresh
	if m.Played() {
		variant = format.Played
	}
	fmt.Printf("Variant: %s\nRecords: %d\n", variant, m.Len())
	for i := tile.ReadPos(0); int(i) < m.Len(); i++ {
		fmt.Printf("%3d: tile %2d, rotation %d, %d lines\n", i, m.IDAt(i), m.RotationAt(i), m.LineCountAt(i))
	}

	return nil
}

func draw(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, err := format.Open(c.Args().Get(0))
	if err != nil {
		return exitError(err)
	}
	if err := m.SeedRotations(); err != nil {
		return exitError(err)
	}

	f, err := os.Create(c.Args().Get(1))
	if err != nil {
		return exitError(err)
	}
	defer f.Close()

	if err := png.Encode(f, render.Board(m, c.Int("columns"))); err != nil {
		return exitError(err)
	}

	return nil
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "amaze"
	app.Usage = "aMaze tile puzzle utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"AMAZE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Describe the records in a maze file",
			ArgsUsage: "FILE",
			Action:    info,
		},
		{
			Name:      "render",
			Usage:     "Render a maze file as a PNG image",
			ArgsUsage: "FILE IMAGE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "columns",
					Value: render.DefaultColumns,
					Usage: "tiles per row",
				},
			},
			Action: draw,
		},
		{
			Name:      "new",
			Usage:     "Start a new game from a maze file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				g, err := newGame(c)
				if err != nil {
					return exitError(err)
				}
				defer g.Close()

				session, err := g.NewGame(c.Args().First())
				if err != nil {
					return exitError(err)
				}
				fmt.Println(session)

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Record every maze file found under a directory",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				g, err := newGame(c)
				if err != nil {
					return exitError(err)
				}
				defer g.Close()

				if err := g.Scan(c.Args().First()); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:      "rotate",
			Usage:     "Rotate a tile by one quarter turn",
			ArgsUsage: "SESSION TILE",
			Action: func(c *cli.Context) error {
				return withSession(c, 2, func(g *amaze.Game) error {
					id, err := strconv.Atoi(c.Args().Get(1))
					if err != nil {
						return err
					}
					r, err := g.Rotate(tile.ID(id))
					if err != nil {
						return err
					}
					fmt.Println(r)
					return nil
				})
			},
		},
		{
			Name:      "reset",
			Usage:     "Return every tile to its original rotation",
			ArgsUsage: "SESSION",
			Action: func(c *cli.Context) error {
				return withSession(c, 1, func(g *amaze.Game) error {
					return g.Reset()
				})
			},
		},
		{
			Name:      "export",
			Usage:     "Write a game out as a played maze file",
			ArgsUsage: "SESSION FILE",
			Action: func(c *cli.Context) error {
				return withSession(c, 2, func(g *amaze.Game) error {
					return g.Export(c.Args().Get(1))
				})
			},
		},
		{
			Name:      "thumbnail",
			Usage:     "Write the stored thumbnail of a game",
			ArgsUsage: "SESSION IMAGE",
			Action: func(c *cli.Context) error {
				return withSession(c, 2, func(g *amaze.Game) error {
					b, err := g.Thumbnail()
					if err != nil {
						return err
					}
					return ioutil.WriteFile(c.Args().Get(1), b, 0644)
				})
			},
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
