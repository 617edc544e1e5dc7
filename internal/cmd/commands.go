package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yokitheyo/logsweep/internal/model"
)

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search QUERY DIR...",
		Short:   "Print every log line containing QUERY",
		Example: `  logsweep search "connection refused" /var/log/app /var/log/worker`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			out, err := e.Search(args[1:], args[0])
			if err != nil {
				return err
			}
			r := a.renderer()
			if err := r.SearchResults(out.Results); err != nil {
				return err
			}
			return r.Failures(out.Failures)
		},
	}
}

func (a *app) searchDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search-dir QUERY DIR",
		Short: "Search a single directory; a missing directory is an error",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			out, err := e.SearchDirectory(args[1], args[0])
			if err != nil {
				return err
			}
			r := a.renderer()
			if err := r.SearchResults(out.Results); err != nil {
				return err
			}
			return r.Failures(out.Failures)
		},
	}
}

func (a *app) countCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count DIR...",
		Short: "Count the occurrences of every distinct line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			out, err := e.CountErrors(args)
			if err != nil {
				return err
			}
			r := a.renderer()
			if err := r.Message("Error count is: " + out.Report); err != nil {
				return err
			}
			return r.Failures(out.Failures)
		},
	}
}

func (a *app) countDuplicatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count-duplicates DIR...",
		Short: "Count the repeats of every distinct line, first occurrence excluded",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			out, err := e.CountDuplicateErrors(args)
			if err != nil {
				return err
			}
			r := a.renderer()
			if err := r.Message("Duplicate Count is: " + out.Report); err != nil {
				return err
			}
			return r.Failures(out.Failures)
		},
	}
}

func (a *app) totalCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "total DIR...",
		Short: "Count log files modified within a date range",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := parseRange(from, to)
			if err != nil {
				return err
			}
			e, err := a.engine()
			if err != nil {
				return err
			}
			out, err := e.CountTotalLogs(args, rng)
			if err != nil {
				return err
			}
			r := a.renderer()
			if err := r.Message(fmt.Sprintf("Total logs in the specified period: %d", out.Total)); err != nil {
				return err
			}
			return r.Failures(out.Failures)
		},
	}
	rangeFlags(cmd, &from, &to)
	return cmd
}

func (a *app) bySizeCmd() *cobra.Command {
	var minKB, maxKB int64
	cmd := &cobra.Command{
		Use:   "by-size DIR...",
		Short: "List log files whose size in KB lies within [--min, --max]",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			out, err := e.SearchBySize(args, minKB, maxKB)
			if err != nil {
				return err
			}
			r := a.renderer()
			if err := r.SizeResults(out.Results); err != nil {
				return err
			}
			return r.Failures(out.Failures)
		},
	}
	cmd.Flags().Int64Var(&minKB, "min", 0, "minimum size in KB, inclusive")
	cmd.Flags().Int64Var(&maxKB, "max", 1<<40, "maximum size in KB, inclusive")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "delete DIR",
		Short: "Delete log files modified within a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := parseRange(from, to)
			if err != nil {
				return err
			}
			e, err := a.engine()
			if err != nil {
				return err
			}
			out, err := e.DeleteLogs(args[0], rng)
			if err != nil {
				return err
			}
			r := a.renderer()
			if err := r.Message(fmt.Sprintf("Logs deleted successfully. (%d files)", len(out.Deleted))); err != nil {
				return err
			}
			return r.Failures(out.Failures)
		},
	}
	rangeFlags(cmd, &from, &to)
	return cmd
}

func (a *app) archiveCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "archive DIR...",
		Short: "Zip the log files of a date range inside each directory, then delete them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := parseRange(from, to)
			if err != nil {
				return err
			}
			e, err := a.engine()
			if err != nil {
				return err
			}
			out, err := e.ArchiveLogs(args, rng)
			if err != nil {
				return err
			}
			r := a.renderer()
			if err := r.Message(fmt.Sprintf("Logs archived to %s successfully.", out.ArchiveName)); err != nil {
				return err
			}
			return r.Failures(out.Failures)
		},
	}
	rangeFlags(cmd, &from, &to)
	return cmd
}

func rangeFlags(cmd *cobra.Command, from, to *string) {
	cmd.Flags().StringVar(from, "from", "", "start of the range, inclusive (2006-01-02 or RFC 3339)")
	cmd.Flags().StringVar(to, "to", "", "end of the range, inclusive (2006-01-02 or RFC 3339)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

func parseRange(from, to string) (model.DateRange, error) {
	f, err := model.ParseDate(from)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("--from: %w", err)
	}
	t, err := model.ParseDate(to)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("--to: %w", err)
	}
	return model.DateRange{From: f, To: t}, nil
}
