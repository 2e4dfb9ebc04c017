package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
)

func (a *App) AddGoal(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	target, _, err := GetAmount(a.reader, "Target amount", a.out, false)
	if err != nil {
		return err
	}
	current, _, err := GetAmount(a.reader, "Saved so far (empty for 0)", a.out, true)
	if err != nil {
		return err
	}
	deadline, err := getSimpleText(a.reader, "Deadline YYYY-MM-DD (optional)", a.out)
	if err != nil {
		return err
	}

	g, err := a.api.CreateGoal(ctx, api.GoalInput{Title: title, TargetAmount: target, CurrentAmount: current, Deadline: deadline})
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Added goal %q id=%s\n", g.Title, g.ID)
	return nil
}

func (a *App) ListGoals(ctx context.Context) error {
	items, err := a.api.ListGoals(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No goals.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tSAVED\tTARGET\tPROGRESS\tDEADLINE\tID")
	for _, g := range items {
		deadline := "-"
		if g.Deadline != nil {
			deadline = g.Deadline.UTC().Format(time.DateOnly)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.0f%%\t%s\t%s\n", g.Title, g.CurrentAmount, g.TargetAmount, progress(g), deadline, g.ID)
	}
	return tw.Flush()
}

func progress(g api.Goal) float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	if p > 100 {
		return 100
	}
	return p
}

// UpdateGoal prompts for each field; empty answers keep the current value
// and "-" clears the deadline.
func (a *App) UpdateGoal(ctx context.Context, args []string) error {
	id, err := a.needID(args, "goal update <id>")
	if err != nil {
		return err
	}

	var p api.GoalPatch
	title, err := getSimpleText(a.reader, "New title (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if title != "" {
		p.Title = &title
	}
	if v, ok, err := GetAmount(a.reader, "New target amount (empty to keep)", a.out, true); err != nil {
		return err
	} else if ok {
		p.TargetAmount = &v
	}
	if v, ok, err := GetAmount(a.reader, "Saved so far (empty to keep)", a.out, true); err != nil {
		return err
	} else if ok {
		p.CurrentAmount = &v
	}
	deadline, err := getSimpleText(a.reader, "Deadline YYYY-MM-DD (empty to keep, - to clear)", a.out)
	if err != nil {
		return err
	}
	if deadline == "-" {
		p.ClearDeadline = true
	} else {
		p.Deadline = deadline
	}

	g, err := a.api.UpdateGoal(ctx, id, p)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Goal %q: %.2f of %.2f\n", g.Title, g.CurrentAmount, g.TargetAmount)
	return nil
}

func (a *App) DeleteGoal(ctx context.Context, args []string) error {
	id, err := a.needID(args, "goal delete <id>")
	if err != nil {
		return err
	}
	if err := a.api.DeleteGoal(ctx, id); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}
