package main

import (
	"flag"
	"fmt"

	"github.com/example/targeteditor/internal/region"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	def := region.NameOfColor(region.ColorByName("black"))
	if c.config != nil {
		def = c.config.Editor.Fill
	}
	out := c.out()
	fmt.Fprintln(out, "available fill colors (* marks the default color):")
	for idx, name := range region.ColorChoices {
		col := region.ColorByName(name)
		marker := " "
		if name == def {
			marker = "*"
		}
		hex := fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", col.R, col.G, col.B)
		fmt.Fprintf(out, "%s %2d: %-8s %s %s\n", marker, idx, name, hex, block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
