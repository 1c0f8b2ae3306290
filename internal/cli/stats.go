package cli

import (
	"fmt"

	"github.com/ckramer/tyke/internal/models"
	"github.com/ckramer/tyke/internal/utils"
)

type HistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Number of entries to show."`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.GetHistory(c.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No completed timers yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-20s %8s\n",
			e.CompletedAt.Local().Format("2006-01-02 15:04"),
			e.Label,
			utils.FormatClock(e.DurationSeconds))
	}
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	p, err := ctx.Store.GetProgress()
	if err != nil {
		return err
	}

	fmt.Printf("Timers completed:  %d\n", p.TotalTimersCompleted)
	fmt.Printf("Minutes completed: %d\n", p.TotalMinutesCompleted)
	fmt.Printf("Current streak:    %d day(s)\n", p.CurrentStreak)
	fmt.Printf("Longest streak:    %d day(s)\n", p.LongestStreak)
	if p.LastCompletedDate != "" {
		fmt.Printf("Last completion:   %s\n", p.LastCompletedDate)
	}

	if len(p.ActivityCounts) > 0 {
		fmt.Println("\nBy activity:")
		for _, a := range models.Activities {
			if count := p.ActivityCounts[a.Kind]; count > 0 {
				fmt.Printf("  %-20s %d\n", a.Name, count)
			}
		}
		for kind, count := range p.ActivityCounts {
			if _, ok := models.ActivityByKind(kind); !ok {
				fmt.Printf("  %-20s %d\n", string(kind), count)
			}
		}
	}
	return nil
}

type BadgesCmd struct {
	All bool `short:"a" help:"Include badges not yet earned."`
}

func (c *BadgesCmd) Run(ctx *Context) error {
	p, err := ctx.Store.GetProgress()
	if err != nil {
		return err
	}

	for _, b := range models.Badges {
		earned := p.HasBadge(b.ID)
		if !earned && !c.All {
			continue
		}
		marker := " "
		if earned {
			marker = "*"
		}
		fmt.Printf("%s %-20s %s\n", marker, b.Name, b.Description)
	}
	if len(p.EarnedBadges) == 0 && !c.All {
		fmt.Println("No badges yet. Complete a timer to earn your first one!")
	}
	return nil
}
