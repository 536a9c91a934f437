package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
	"github.com/jaskrrish/qirt-go/internal/qirt/quantum"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderTerms(w io.Writer, terms []quantum.Term) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Ket", "Coefficient", "Probability"})
	for _, term := range terms {
		t.AppendRow(table.Row{
			"|" + term.Symbols + "⟩",
			formatCoefficient(term.Coefficient),
			fmt.Sprintf("%.4f", term.Probability),
		})
	}
	t.Render()
}

func renderOutcomes(w io.Writer, set *quantum.OutcomeSet, tbl *notation.Table) error {
	t := newTable(w)
	t.AppendHeader(table.Row{"Outcome", "Bits", "Probability", "Post-measurement state"})

	remaining := set.RemainingBases()
	for j, o := range set.Outcomes {
		post := "-"
		if o.Possible() && len(set.Remaining) > 0 {
			terms, err := quantum.Terms(o.State, remaining, tbl)
			if err != nil {
				return err
			}
			post = formatTerms(terms)
		}
		t.AppendRow(table.Row{
			"|" + set.Ket(tbl, j) + "⟩",
			quantum.FormatBits(o.Bits),
			fmt.Sprintf("%.4f", o.Probability),
			post,
		})
	}
	t.Render()
	return nil
}

func renderCounts(w io.Writer, counts quantum.Counts) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	freqs := counts.Frequencies()
	t := newTable(w)
	t.AppendHeader(table.Row{"Bits", "Count", "Frequency"})
	for _, k := range keys {
		t.AppendRow(table.Row{k, counts[k], fmt.Sprintf("%.4f", freqs[k])})
	}
	t.AppendFooter(table.Row{"Total", counts.Total(), ""})
	t.Render()
}

func renderNotation(w io.Writer, tbl *notation.Table) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Basis", "Bit 0", "Bit 1"})
	for _, b := range notation.Bases {
		t.AppendRow(table.Row{b.String(), string(tbl.Symbol(b, 0)), string(tbl.Symbol(b, 1))})
	}
	t.Render()
}
