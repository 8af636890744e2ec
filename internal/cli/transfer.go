package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"bodycomp/internal/transfer"
)

// ExportCmd writes the collection to a CSV or JSON file.
type ExportCmd struct {
	Format string `short:"f" help:"Export format (csv|json)." default:"csv" enum:"csv,json"`
	Output string `short:"o" help:"Output file. Defaults to body_fat_tracker_data.<format>; '-' writes to stdout."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	es, _, closeFn, err := ctx.entries(context.Background())
	if err != nil {
		return err
	}
	defer closeFn()

	entries := es.List()
	if c.Output == "-" {
		return transfer.Write(ctx.Out, c.Format, entries)
	}

	var buf bytes.Buffer
	if err := transfer.Write(&buf, c.Format, entries); err != nil {
		return err
	}
	out := c.Output
	if out == "" {
		out = transfer.Filename(c.Format)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	_, _ = fmt.Fprintf(ctx.Out, "Exported %d entries to %s\n", len(entries), out)
	return nil
}

// ImportCmd merges a JSON export into the collection.
type ImportCmd struct {
	Path string `arg:"" help:"JSON file previously written by 'export --format json'." type:"path"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	incoming, err := transfer.ReadFile(c.Path)
	if err != nil {
		return err
	}

	bg := context.Background()
	es, _, closeFn, err := ctx.entries(bg)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := es.Merge(bg, incoming)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.Out, "Imported %s: %d added, %d replaced, %d total\n", c.Path, res.Added, res.Replaced, res.Total)
	return nil
}
