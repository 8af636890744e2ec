// Package cli implements the bodycomp subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"bodycomp/internal/app"
	"bodycomp/internal/config"
	"bodycomp/internal/domain"
	"bodycomp/internal/transfer"
)

// Context is passed to every command's Run method.
type Context struct {
	Config config.Config
	Out    io.Writer
	Err    io.Writer

	// Open overrides OpenBackend in tests.
	Open func(ctx context.Context, cfg config.Config) (*Backend, error)
	// Now overrides the clock used for the default entry date.
	Now func() time.Time
}

func (c *Context) open(ctx context.Context) (*Backend, error) {
	if c.Open != nil {
		return c.Open(ctx, c.Config)
	}
	return OpenBackend(ctx, c.Config)
}

func (c *Context) today() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().Format(domain.DateLayout)
}

// entries opens the backend and loads the collection. The returned func
// closes the backend.
func (c *Context) entries(ctx context.Context, opts ...app.Option) (*app.EntryService, *Backend, func(), error) {
	b, err := c.open(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() { _ = b.Close() }
	opts = append([]app.Option{app.WithStrictDerivation(c.Config.StrictDerivation)}, opts...)
	es := app.NewEntryService(b.Blobs, opts...)
	if err := es.Load(ctx); err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return es, b, closeFn, nil
}

// warn prints lenient-parse problems without failing the command.
func (c *Context) warn(err error) {
	if err == nil {
		return
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			_, _ = fmt.Fprintf(c.Err, "warning: %v (field left empty)\n", e)
		}
		return
	}
	_, _ = fmt.Fprintf(c.Err, "warning: %v (field left empty)\n", err)
}

// summary renders one entry on a line.
func summary(e domain.Entry) string {
	na := transfer.NotAvailable
	return fmt.Sprintf("%s  weight %s kg  waist %s cm  neck %s cm  body fat %s %%  fat-free mass %s kg",
		e.Date,
		transfer.Linear(e.Weight, na),
		transfer.Linear(e.Waist, na),
		transfer.Linear(e.Neck, na),
		transfer.Derived(e.BodyFatPercentage, na),
		transfer.Derived(e.FatFreeMass, na),
	)
}

// formatRaw renders a stored value for a form field, empty when absent.
func formatRaw(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
