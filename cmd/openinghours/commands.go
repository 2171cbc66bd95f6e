package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/ngrash/go-openinghours/openinghours"
)

func (a *app) normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [expression...]",
		Short: "Print expressions in canonical form, one per line",
		Long: "Print expressions in canonical form, one per line.\n" +
			"Without arguments expressions are read line by line from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				for _, s := range args {
					fmt.Fprintln(out, openinghours.Normalize(s))
				}
				return nil
			}
			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				fmt.Fprintln(out, openinghours.Normalize(sc.Text()))
			}
			return sc.Err()
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <expression>",
		Short: "Check that an expression can be evaluated with the configured capabilities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openinghours.Parse(args[0])
			if err != nil {
				return err
			}
			mode, err := openinghours.ParseMode(a.v.GetString("mode"))
			if err != nil {
				return err
			}
			_, _, available, err := a.environment()
			if err != nil {
				return err
			}
			required := e.RequiredCapabilities()
			a.log.Debugw("validating", "expression", e.Normalized(), "required", required, "available", available, "mode", mode)
			if err := e.Validate(available, mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%v)\n", e.Normalized(), required)
			return nil
		},
	}
}

// addRangeFlags adds the flags selecting the evaluated range.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "first day (YYYY-MM-DD) or instant (RFC 3339); default today")
	cmd.Flags().Int("days", 7, "number of days to evaluate")
}

func (a *app) evalRange(cmd *cobra.Command) (from, to time.Time, err error) {
	loc, err := a.location()
	if err != nil {
		return
	}
	s, _ := cmd.Flags().GetString("from")
	days, _ := cmd.Flags().GetInt("days")
	if days <= 0 {
		return from, to, fmt.Errorf("days must be positive, got %d", days)
	}
	if s == "" {
		y, m, d := time.Now().In(loc).Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, loc)
	} else if from, err = time.ParseInLocation(time.DateOnly, s, loc); err != nil {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return from, to, fmt.Errorf("from: %q is neither a date nor an RFC 3339 time", s)
		}
		from = t.In(loc)
	}
	return from, from.AddDate(0, 0, days), nil
}

func (a *app) evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Print the states of an expression over a range of days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openinghours.Parse(args[0])
			if err != nil {
				return err
			}
			from, to, err := a.evalRange(cmd)
			if err != nil {
				return err
			}
			holidays, sun, available, err := a.environment()
			if err != nil {
				return err
			}
			if missing := e.RequiredCapabilities() &^ available & (openinghours.CapabilityLocation | openinghours.CapabilityPublicHoliday); missing != 0 {
				a.log.Warnw("evaluating without required capabilities", "missing", missing)
			}
			ivs, err := e.Evaluate(from, to, holidays, sun)
			if err != nil {
				return err
			}
			a.log.Debugw("evaluated", "expression", e.Normalized(), "from", from, "to", to, "intervals", len(ivs))
			out := cmd.OutOrStdout()
			for _, iv := range ivs {
				fmt.Fprintln(out, iv)
			}
			return nil
		},
	}
	addRangeFlags(cmd)
	return cmd
}

func (a *app) diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <expression A> <expression B>",
		Short: "Compare the states of two expressions over a range of days",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ea, err := openinghours.Parse(args[0])
			if err != nil {
				return fmt.Errorf("A: %w", err)
			}
			eb, err := openinghours.Parse(args[1])
			if err != nil {
				return fmt.Errorf("B: %w", err)
			}
			out := cmd.OutOrStdout()
			if ea.Normalized() == eb.Normalized() {
				fmt.Fprintln(out, "expressions are identical")
				return nil
			}

			from, to, err := a.evalRange(cmd)
			if err != nil {
				return err
			}
			holidays, sun, _, err := a.environment()
			if err != nil {
				return err
			}
			ia, err := ea.Evaluate(from, to, holidays, sun)
			if err != nil {
				return fmt.Errorf("A: %w", err)
			}
			ib, err := eb.Evaluate(from, to, holidays, sun)
			if err != nil {
				return fmt.Errorf("B: %w", err)
			}
			if diff := cmp.Diff(ia, ib); diff != "" {
				fmt.Fprintln(out, "expressions are different: -A +B")
				fmt.Fprintln(out, diff)
			} else {
				fmt.Fprintln(out, "expressions are equivalent")
			}
			return nil
		},
	}
	addRangeFlags(cmd)
	return cmd
}
