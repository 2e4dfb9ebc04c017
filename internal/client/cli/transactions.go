package cli

import (
	"context"
	"fmt"
	"path"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
	"github.com/dmitrijs2005/fintrack/internal/filex"
	"github.com/dmitrijs2005/fintrack/internal/netx"
)

func (a *App) AddTransaction(ctx context.Context) error {
	kind, err := getSimpleText(a.reader, "Type (income/expense)", a.out)
	if err != nil {
		return err
	}
	amount, _, err := GetAmount(a.reader, "Amount", a.out, false)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category", a.out)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Date YYYY-MM-DD (empty for today)", a.out)
	if err != nil {
		return err
	}
	if date == "" {
		date = now().Format(time.DateOnly)
	}
	note, err := getSimpleText(a.reader, "Note (optional)", a.out)
	if err != nil {
		return err
	}

	t, err := a.api.CreateTransaction(ctx, api.TransactionInput{
		Type:     strings.ToLower(kind),
		Amount:   amount,
		Category: category,
		Date:     date,
		Note:     note,
	})
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Added %s %.2f (%s) id=%s\n", t.Type, t.Amount, t.Category, t.ID)
	return nil
}

func (a *App) ListTransactions(ctx context.Context, args []string) error {
	f, err := parsePeriod(args)
	if err != nil {
		return a.report(ctx, err)
	}
	items, err := a.api.ListTransactions(ctx, f)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No transactions.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tAMOUNT\tCATEGORY\tNOTE\tID")
	for _, t := range items {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%s\n", t.Date.UTC().Format(time.DateOnly), t.Type, t.Amount, t.Category, t.Note, t.ID)
	}
	return tw.Flush()
}

func (a *App) DeleteTransaction(ctx context.Context, args []string) error {
	id, err := a.needID(args, "tx delete <id>")
	if err != nil {
		return err
	}
	if err := a.api.DeleteTransaction(ctx, id); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) Summary(ctx context.Context, args []string) error {
	f, err := parsePeriod(args)
	if err != nil {
		return a.report(ctx, err)
	}
	s, err := a.api.Summary(ctx, f)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "Income:   %.2f\nExpenses: %.2f\nBalance:  %.2f\n", s.TotalIncome, s.TotalExpenses, s.Balance)
	if len(s.ExpensesByCategory) > 0 {
		fmt.Fprintln(a.out, "Expenses by category:")
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, c := range s.ExpensesByCategory {
			fmt.Fprintf(tw, "  %s\t%.2f\n", c.Category, c.Total)
		}
		return tw.Flush()
	}
	return nil
}

// Export asks the server for a CSV export and downloads it into the
// exports directory.
func (a *App) Export(ctx context.Context, args []string) error {
	f, err := parsePeriod(args)
	if err != nil {
		return a.report(ctx, err)
	}
	link, err := a.api.Export(ctx, f)
	if err != nil {
		return a.report(ctx, err)
	}

	data, err := netx.DownloadFromPresignedURL(ctx, a.api.HTTPClient(), link.URL)
	if err != nil {
		return a.report(ctx, fmt.Errorf("download export: %w", err))
	}

	saved, err := filex.SaveInSubdDir(a.exportDir, path.Base(link.Key), data)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Exported %d transactions to %s\n", link.Count, saved)
	return nil
}
