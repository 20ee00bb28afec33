// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/pool"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/schedule"
	"github.com/tomtom215/marquee/internal/selector"
	"github.com/tomtom215/marquee/internal/validation"
)

const commandTimeout = 2 * time.Minute

var errNoCredentials = errors.New("catalog credentials required: set TMDB_READ_ACCESS_TOKEN or TMDB_API_KEY")

// pipeline is the engine and its collaborators, built from the loaded config.
type pipeline struct {
	table   *schedule.Table
	builder *pool.Builder
	engine  *recommend.Engine
	close   func() error
}

func (c *cli) pipeline() (*pipeline, error) {
	table, err := schedule.Load(c.cfg.Schedule.Path)
	if err != nil {
		return nil, err
	}
	st, err := c.cfg.Store.OpenStore(logging.WithComponent("store"))
	if err != nil {
		return nil, err
	}
	fetcher, _ := c.cfg.Catalog.NewFetcher()
	builder := pool.NewBuilder(fetcher, st, c.cfg.Pool.BuilderOptions(logging.WithComponent("pool")))

	engine, err := recommend.NewEngine(fetcher, table, builder, c.cfg.Recommend.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return &pipeline{table: table, builder: builder, engine: engine, close: st.Close}, nil
}

func (c *cli) print(w io.Writer, v interface{}, text func(io.Writer)) error {
	if !c.jsonOutput {
		text(w)
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newPickCmd(c *cli) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick the movie of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			p, err := c.pipeline()
			if err != nil {
				return err
			}
			defer p.close()

			if p.table.Resolve(day).Kind != schedule.KindManual && !c.cfg.Catalog.HasCredentials() {
				return errNoCredentials
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			sel, err := p.engine.DailyMovie(ctx, day)
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), sel, func(w io.Writer) {
				fmt.Fprintf(w, "%s  #%d %s\n", sel.Date, sel.Item.ID, sel.Item.Title)
				fmt.Fprintf(w, "  source:  %s\n", sel.Source)
				fmt.Fprintf(w, "  context: %s\n", sel.Context.Name)
				if sel.Position != nil {
					fmt.Fprintf(w, "  theme:   %s (pool %d, index %d, page %d, offset %d)\n",
						sel.ThemeID, sel.PoolSize, sel.Position.Index, sel.Position.Page, sel.Position.Offset)
				}
				if sel.Fallback {
					fmt.Fprintln(w, "  fallback: first item of page 1")
				}
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD (default: today, UTC)")
	return cmd
}

func newShortlistCmd(c *cli) *cobra.Command {
	var (
		date string
		n    int
	)

	cmd := &cobra.Command{
		Use:   "shortlist",
		Short: "List the day's shuffled candidates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			if !c.cfg.Catalog.HasCredentials() {
				return errNoCredentials
			}
			p, err := c.pipeline()
			if err != nil {
				return err
			}
			defer p.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			items, err := p.engine.Shortlist(ctx, day, n)
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), items, func(w io.Writer) {
				for i, item := range items {
					fmt.Fprintf(w, "%2d. #%d %s [%s]\n", i+1, item.ID, item.Title, item.Source)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD (default: today, UTC)")
	cmd.Flags().IntVarP(&n, "count", "n", 0, "Number of movies (default: recommend.shortlist_default)")
	return cmd
}

func newResolveCmd(c *cli) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show which calendar rule applies to a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			table, err := schedule.Load(c.cfg.Schedule.Path)
			if err != nil {
				return err
			}
			res := table.Resolve(day)
			return c.print(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "%s  %s rule %q: %s\n", day.Format(validation.DateLayout), res.Kind, res.MatchedKey, res.Context.Name)
				switch {
				case res.Override != nil:
					fmt.Fprintf(w, "  item: #%d %s\n", res.Override.ItemID, res.Override.Title)
				case res.Theme != nil:
					fmt.Fprintf(w, "  theme: %s (pool %d)\n", res.Theme.ID, res.PoolSize)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD (default: today, UTC)")
	return cmd
}

type indexResult struct {
	Date      string            `json:"date"`
	DayOfYear int               `json:"day_of_year"`
	PoolSize  int               `json:"pool_size"`
	Position  selector.Position `json:"position"`
}

func newIndexCmd(c *cli) *cobra.Command {
	var (
		date     string
		poolSize int
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Compute the selector position for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			if poolSize == 0 {
				table, err := schedule.Load(c.cfg.Schedule.Path)
				if err != nil {
					return err
				}
				poolSize = table.Resolve(day).PoolSize
			}
			if poolSize <= 0 {
				return fmt.Errorf("pool size must be positive (the rule for %s has none; pass --pool-size)", day.Format(validation.DateLayout))
			}

			res := indexResult{
				Date:      day.Format(validation.DateLayout),
				DayOfYear: selector.DayOfYear(day),
				PoolSize:  poolSize,
				Position:  selector.ForDate(day, poolSize),
			}
			return c.print(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "%s (day %d) pool %d: index %d, page %d, offset %d\n",
					res.Date, res.DayOfYear, res.PoolSize, res.Position.Index, res.Position.Page, res.Position.Offset)
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD (default: today, UTC)")
	cmd.Flags().IntVarP(&poolSize, "pool-size", "p", 0, "Pool size (default: the matching rule's pool size)")
	return cmd
}

func newPoolCmd(c *cli) *cobra.Command {
	var items bool

	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Build the global candidate pool and summarize it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.cfg.Catalog.HasCredentials() {
				return errNoCredentials
			}
			p, err := c.pipeline()
			if err != nil {
				return err
			}
			defer p.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			built, err := p.builder.Refresh(ctx)
			if err != nil {
				return err
			}
			counts := built.Counts()
			if !items {
				built = &pool.Pool{BuiltAt: built.BuiltAt}
			}
			return c.print(cmd.OutOrStdout(), built, func(w io.Writer) {
				fmt.Fprintf(w, "built %s: %d mainstream, %d hidden gems\n",
					built.BuiltAt.Format(time.RFC3339), counts[pool.SourceMainstream], counts[pool.SourceHiddenGem])
				for _, item := range built.Items {
					fmt.Fprintf(w, "  #%d %s [%s]\n", item.ID, item.Title, item.Source)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&items, "items", false, "Include every candidate")
	return cmd
}

func newScheduleCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule file utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [path]",
		Short: "Validate a schedule file (default: schedule.path)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.cfg.Schedule.Path
			if len(args) == 1 {
				path = args[0]
			}
			table, err := schedule.Load(path)
			if err != nil {
				return err
			}
			weekly, events, overrides := table.Stats()
			if path == "" {
				path = "built-in"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d weekly, %d events, %d overrides)\n", path, weekly, events, overrides)
			return nil
		},
	})
	return cmd
}
