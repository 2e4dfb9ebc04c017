package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
)

// SetBudget creates or overwrites the budget for a category and month.
func (a *App) SetBudget(ctx context.Context) error {
	category, err := getSimpleText(a.reader, "Category", a.out)
	if err != nil {
		return err
	}
	t := now()
	ms, err := getSimpleText(a.reader, fmt.Sprintf("Month (empty for %d)", t.Month()), a.out)
	if err != nil {
		return err
	}
	ys, err := getSimpleText(a.reader, fmt.Sprintf("Year (empty for %d)", t.Year()), a.out)
	if err != nil {
		return err
	}
	if ms == "" {
		ms = strconv.Itoa(int(t.Month()))
	}
	if ys == "" {
		ys = strconv.Itoa(t.Year())
	}
	month, year, err := parseMonthYear(ms, ys)
	if err != nil {
		return a.report(ctx, err)
	}
	amount, _, err := GetAmount(a.reader, "Amount", a.out, false)
	if err != nil {
		return err
	}

	b, err := a.api.SetBudget(ctx, api.BudgetInput{Category: category, Month: month, Year: year, Amount: amount})
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Budget %s %02d/%d = %.2f id=%s\n", b.Category, b.Month, b.Year, b.Amount, b.ID)
	return nil
}

func (a *App) ListBudgets(ctx context.Context, args []string) error {
	t := now()
	month, year := int(t.Month()), t.Year()
	switch len(args) {
	case 0:
	case 2:
		var err error
		if month, year, err = parseMonthYear(args[0], args[1]); err != nil {
			return a.report(ctx, err)
		}
	default:
		fmt.Fprintln(a.out, "Usage: budget list [<month> <year>]")
		return errUsage
	}

	items, err := a.api.ListBudgets(ctx, month, year)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(items) == 0 {
		fmt.Fprintf(a.out, "No budgets for %02d/%d.\n", month, year)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tID")
	for _, b := range items {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", b.Category, b.Amount, b.ID)
	}
	return tw.Flush()
}

func (a *App) DeleteBudget(ctx context.Context, args []string) error {
	id, err := a.needID(args, "budget delete <id>")
	if err != nil {
		return err
	}
	if err := a.api.DeleteBudget(ctx, id); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}
