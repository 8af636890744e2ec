package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"bodycomp/internal/app"
	"bodycomp/internal/domain"
	"bodycomp/internal/transfer"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// AddCmd records a new measurement.
type AddCmd struct {
	Date   string       `short:"d" help:"Measurement date (YYYY-MM-DD). Defaults to today."`
	Weight string       `short:"w" help:"Body weight."`
	Waist  string       `short:"a" help:"Waist circumference."`
	Neck   string       `short:"n" help:"Neck circumference."`
	Unit   domain.Units `short:"u" help:"Unit system (metric|imperial)." default:"metric" enum:"metric,imperial"`
}

func (c *AddCmd) Run(ctx *Context) error {
	bg := context.Background()
	es, _, closeFn, err := ctx.entries(bg)
	if err != nil {
		return err
	}
	defer closeFn()

	date := c.Date
	if date == "" {
		date = ctx.today()
	}
	raw, perr := domain.ParseRawEntry(date, c.Weight, c.Waist, c.Neck, c.Unit)
	ctx.warn(perr)

	entry, index, err := app.NewEditor(es).Submit(bg, raw)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.Out, "Added %s (#%d of %d, id %s)\n", entry.Date, index+1, len(es.List()), entry.ID)
	_, _ = fmt.Fprintln(ctx.Out, summary(entry))
	return nil
}

// EditCmd changes a stored entry. Flags that are not given keep their
// current value; an empty value clears the field.
type EditCmd struct {
	ID     string       `arg:"" help:"Entry ID (see 'list')."`
	Date   *string      `short:"d" help:"New date (YYYY-MM-DD)."`
	Weight *string      `short:"w" help:"Body weight."`
	Waist  *string      `short:"a" help:"Waist circumference."`
	Neck   *string      `short:"n" help:"Neck circumference."`
	Unit   domain.Units `short:"u" help:"Unit system of the given values (metric|imperial)." default:"metric" enum:"metric,imperial"`
}

func (c *EditCmd) Run(ctx *Context) error {
	bg := context.Background()
	es, _, closeFn, err := ctx.entries(bg)
	if err != nil {
		return err
	}
	defer closeFn()

	editor := app.NewEditor(es)
	current, err := editor.Begin(c.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", err, c.ID)
	}

	raw, perr := domain.ParseRawEntry(deref(c.Date), deref(c.Weight), deref(c.Waist), deref(c.Neck), c.Unit)
	ctx.warn(perr)
	if c.Date == nil {
		raw.Date = current.Date
	}
	if c.Weight == nil {
		raw.Weight = current.Weight
	}
	if c.Waist == nil {
		raw.Waist = current.Waist
	}
	if c.Neck == nil {
		raw.Neck = current.Neck
	}

	entry, index, err := editor.Submit(bg, raw)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.Out, "Updated %s (#%d of %d)\n", entry.ID, index+1, len(es.List()))
	_, _ = fmt.Fprintln(ctx.Out, summary(entry))
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// DeleteCmd removes an entry.
type DeleteCmd struct {
	ID string `arg:"" help:"Entry ID (see 'list')."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	bg := context.Background()
	es, _, closeFn, err := ctx.entries(bg)
	if err != nil {
		return err
	}
	defer closeFn()

	deleted, err := es.Delete(bg, c.ID)
	if err != nil {
		return err
	}
	if !deleted {
		_, _ = fmt.Fprintf(ctx.Out, "No entry with id %s\n", c.ID)
		return nil
	}
	_, _ = fmt.Fprintf(ctx.Out, "Deleted %s\n", c.ID)
	return nil
}

// ListCmd prints the collection as a table.
type ListCmd struct {
	JSON bool `help:"Print JSON instead of a table."`
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func (c *ListCmd) Run(ctx *Context) error {
	es, _, closeFn, err := ctx.entries(context.Background())
	if err != nil {
		return err
	}
	defer closeFn()

	entries := es.List()
	if c.JSON {
		return transfer.WriteJSON(ctx.Out, entries)
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(ctx.Out, "No entries yet. Add one with 'bodycomp add'.")
		return nil
	}
	_, _ = fmt.Fprintln(ctx.Out, renderTable(entries))
	return nil
}

func renderTable(entries []domain.Entry) string {
	na := transfer.NotAvailable
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.ID,
			e.Date,
			transfer.Linear(e.Weight, na),
			transfer.Linear(e.Waist, na),
			transfer.Linear(e.Neck, na),
			transfer.Derived(e.BodyFatPercentage, na),
			transfer.Derived(e.FatFreeMass, na),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "Date", "Weight (kg)", "Waist (cm)", "Neck (cm)", "Body Fat %", "Fat-Free Mass (kg)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// LatestCmd prints the most recent entry as form defaults.
type LatestCmd struct{}

func (c *LatestCmd) Run(ctx *Context) error {
	es, _, closeFn, err := ctx.entries(context.Background())
	if err != nil {
		return err
	}
	defer closeFn()

	e, ok := es.Latest()
	if !ok {
		_, _ = fmt.Fprintln(ctx.Out, "No entries yet.")
		return nil
	}
	_, _ = fmt.Fprintf(ctx.Out, "id=%s\ndate=%s\nweight=%s\nwaist=%s\nneck=%s\n",
		e.ID, e.Date, formatRaw(e.Weight), formatRaw(e.Waist), formatRaw(e.Neck))
	return nil
}

// ChartCmd prints the chart series.
type ChartCmd struct{}

func (c *ChartCmd) Run(ctx *Context) error {
	es, _, closeFn, err := ctx.entries(context.Background())
	if err != nil {
		return err
	}
	defer closeFn()

	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(app.NewChartsService(es).Series())
}
