package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/paraglidehq/azam"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func newApp(logger *logrus.Logger) *cli.App {
	app := cli.NewApp()
	app.Name = "azam"
	app.Usage = "Encode and decode azam sections"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "logging level (debug, info, warn, error)",
			Value: "warn",
		},
	}
	app.Before = func(c *cli.Context) error {
		level, err := logrus.ParseLevel(c.String("log-level"))
		if err != nil {
			return err
		}
		logger.SetOutput(c.App.ErrWriter)
		logger.SetLevel(level)
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:      "encode",
			Usage:     "Encode values as one concatenated azam string",
			UsageText: "azam encode [--uint64] [value...]",
			Description: `
Each argument is a hex byte string, or a decimal number with --uint64.
Without arguments the standard input is encoded as a single section.

$ azam encode ff 0100
zfhg0`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "uint64",
					Usage: "read arguments as decimal unsigned 64-bit integers",
				},
			},
			Action: func(c *cli.Context) error {
				return runEncode(c, logger)
			},
		},
		{
			Name:      "decode",
			Usage:     "Decode an azam string, printing one section per line",
			UsageText: "azam decode [--uint64] [string]",
			Description: `
Sections are printed as hex, or as decimal numbers with --uint64.
Without an argument the standard input is decoded.

$ azam decode zfhg0
ff
0100`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "uint64",
					Usage: "print sections as decimal unsigned 64-bit integers",
				},
			},
			Action: func(c *cli.Context) error {
				return runDecode(c, logger)
			},
		},
	}
	return app
}

func runEncode(c *cli.Context, logger *logrus.Logger) error {
	enc := azam.NewEncoder(c.App.Writer)
	if c.Args().Len() == 0 {
		logger.Debug("encoding standard input")
		if err := enc.EncodeFrom(c.App.Reader); err != nil {
			return err
		}
		return finish(c, enc)
	}

	for i, arg := range c.Args().Slice() {
		var v []byte
		if c.Bool("uint64") {
			n, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return errors.Wrapf(err, "argument %d", i+1)
			}
			v = azam.ID(n).Bytes()
		} else {
			b, err := hex.DecodeString(arg)
			if err != nil {
				return errors.Wrapf(err, "argument %d", i+1)
			}
			v = b
		}
		logger.WithFields(logrus.Fields{"arg": i + 1, "bytes": len(v)}).Debug("encoding section")
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return finish(c, enc)
}

func finish(c *cli.Context, enc *azam.Encoder) error {
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.App.Writer)
	return err
}

func runDecode(c *cli.Context, logger *logrus.Logger) error {
	var (
		sections [][]byte
		err      error
	)
	switch c.Args().Len() {
	case 0:
		logger.Debug("decoding standard input")
		sections, err = azam.NewDecoder(skipSpace{c.App.Reader}).DecodeAll()
	case 1:
		sections, err = azam.DecodeBytes(c.Args().First())
	default:
		return errors.New("decode takes at most one argument")
	}
	if err != nil {
		return err
	}
	logger.WithField("sections", len(sections)).Debug("decoded")

	for _, b := range sections {
		line := hex.EncodeToString(b)
		if c.Bool("uint64") {
			id, err := azam.FromBytes(b)
			if err != nil {
				return err
			}
			line = id.Format(azam.FormatDecimal)
		}
		if _, err := fmt.Fprintln(c.App.Writer, line); err != nil {
			return errors.Wrap(err, "write output")
		}
	}
	return nil
}

// skipSpace drops ASCII whitespace, so piped input ending in a newline
// decodes cleanly.
type skipSpace struct {
	r io.Reader
}

func (s skipSpace) Read(p []byte) (int, error) {
	for {
		n, err := s.r.Read(p)
		j := 0
		for _, c := range p[:n] {
			switch c {
			case ' ', '\t', '\r', '\n':
			default:
				p[j] = c
				j++
			}
		}
		if j > 0 || err != nil {
			return j, err
		}
	}
}
