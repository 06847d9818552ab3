package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/utils"
)

// TextWriter prints the summary and a preview of the differing records.
// Limit caps the preview; 0 prints none, a negative value prints all.
type TextWriter struct {
	Limit int
}

func (t TextWriter) Write(w io.Writer, res *reconcile.DiffResult, meta Meta) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	s := res.Summary

	fmt.Fprintf(tw, "Old:\t%s\t(%d rows, %d duplicate keys)\n", meta.OldSource, s.OldRows, s.OldDuplicates)
	fmt.Fprintf(tw, "New:\t%s\t(%d rows, %d duplicate keys)\n", meta.NewSource, s.NewRows, s.NewDuplicates)
	fmt.Fprintf(tw, "Keys:\t%s\t(%s)\n", strings.Join(res.Keys, ", "), res.Alignment)
	fmt.Fprintln(tw)
	for _, st := range reconcile.Statuses {
		fmt.Fprintf(tw, "%s:\t%d\n", StatusLabel(st), s.Count(st))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !res.HasDifferences() {
		_, err := fmt.Fprintln(w, "\nThe two tables are identical.")
		return err
	}
	if t.Limit == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tKEY\tDETAILS")
	shown := 0
	for _, rec := range res.Records {
		if rec.Status == reconcile.StatusUnchanged {
			continue
		}
		if t.Limit > 0 && shown == t.Limit {
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", StatusLabel(rec.Status), rec.Key, details(rec))
		shown++
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if remaining := s.Added + s.Removed + s.Changed - shown; remaining > 0 {
		_, err := fmt.Fprintf(w, "... %d more\n", remaining)
		return err
	}
	return nil
}

func details(rec reconcile.Record) string {
	if rec.Status != reconcile.StatusChanged {
		return ""
	}
	parts := make([]string, len(rec.Changes))
	for i, c := range rec.Changes {
		parts[i] = fmt.Sprintf("%s: %q -> %q", c.Column, utils.ToString(c.Old), utils.ToString(c.New))
	}
	return strings.Join(parts, "; ")
}

func (TextWriter) ContentType() string { return "text/plain; charset=utf-8" }

func (TextWriter) Extension() string { return ".txt" }
