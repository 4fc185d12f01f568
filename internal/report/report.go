// Package report prints sampling results for humans.
package report

import (
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/bertrand/sim"
)

// Write prints one row per result, numbers formatted for tag.
func Write(w io.Writer, tag language.Tag, results []sim.Result) error {
	p := message.NewPrinter(tag)
	if len(results) > 0 {
		if _, err := p.Fprintf(w, "inscribed triangle side: %.3f\n", results[0].Threshold); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := io.WriteString(tw, "method\ttrials\tlonger\testimate\texpected\tdeviation\t\n"); err != nil {
		return err
	}
	for _, r := range results {
		_, err := p.Fprintf(tw, "%s\t%d\t%d\t%.4f\t%.4f\t%+.4f\t\n",
			r.Method, r.Trials, r.Successes, r.Probability, r.Expected(), r.Deviation())
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
