package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/util"
	"github.com/ppiankov/veritas/internal/worker"
)

const maxCellRunes = 60

// ColorEnabled reports whether w is a terminal that should get ANSI colors
func ColorEnabled(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func verdictColors(v model.Verdict) text.Colors {
	switch v {
	case model.VerdictTrue, model.VerdictMostlyTrue:
		return text.Colors{text.FgGreen, text.Bold}
	case model.VerdictFalse, model.VerdictMostlyFalse:
		return text.Colors{text.FgRed, text.Bold}
	case model.VerdictError:
		return text.Colors{text.FgHiBlack}
	default:
		return text.Colors{text.FgYellow}
	}
}

func paintVerdict(v model.Verdict, color bool) string {
	if !color {
		return v.Label()
	}
	return verdictColors(v).Sprint(v.Label())
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

// Summary writes a compact table describing one check result
func Summary(w io.Writer, res *model.CheckResult, color bool) error {
	tw := newTable()
	tw.SetTitle("Fact-check")

	source := "pipeline"
	if res.Cached {
		source = "cache"
		if res.Match != nil {
			source = fmt.Sprintf("cache (similarity %s)", Percent(res.Match.Ratio, 1))
		}
	}

	tw.AppendRows([]table.Row{
		{"Input", util.TruncateRunes(res.Input, maxCellRunes)},
		{"Verdict", paintVerdict(res.Verdict, color)},
		{"Confidence", Percent(res.Confidence, 1)},
		{"Sentiment", fmt.Sprintf("%s %s (%s, %s)", SentimentIcon(res.Sentiment.Sentiment), res.Sentiment.Sentiment, res.Sentiment.Emotion, Percent(res.Sentiment.Confidence, 0))},
		{"Source", source},
		{"Duration", res.Duration.Round(time.Millisecond).String()},
	})
	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return err
	}

	if res.Pipeline == nil || len(res.Pipeline.Assessments) == 0 {
		return nil
	}

	claims := newTable()
	claims.AppendHeader(table.Row{"#", "Claim", "Verdict", "Confidence", "Evidence"})
	for i, a := range res.Pipeline.Assessments {
		claims.AppendRow(table.Row{
			i + 1,
			util.TruncateRunes(a.Claim, maxCellRunes),
			paintVerdict(a.Verdict, color),
			Percent(a.Confidence, 1),
			len(a.Evidence),
		})
	}
	claims.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	_, err := fmt.Fprintln(w, claims.Render())
	return err
}

// Stats writes the verification history summary
func Stats(w io.Writer, stats model.Stats) error {
	tw := newTable()
	tw.SetTitle("Verification history")
	tw.AppendRows([]table.Row{
		{"Verified claims", stats.TotalVerifiedClaims},
		{"Average confidence", Percent(stats.AverageConfidence, 1)},
		{"Sessions", stats.TotalSessions},
	})
	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return err
	}

	if len(stats.VerdictDistribution) == 0 {
		return nil
	}

	verdicts := make([]string, 0, len(stats.VerdictDistribution))
	for v := range stats.VerdictDistribution {
		verdicts = append(verdicts, v)
	}
	sort.Slice(verdicts, func(i, j int) bool {
		ci, cj := stats.VerdictDistribution[verdicts[i]], stats.VerdictDistribution[verdicts[j]]
		if ci != cj {
			return ci > cj
		}
		return verdicts[i] < verdicts[j]
	})

	dist := newTable()
	dist.AppendHeader(table.Row{"Verdict", "Count"})
	for _, v := range verdicts {
		dist.AppendRow(table.Row{model.Verdict(v).Label(), stats.VerdictDistribution[v]})
	}
	dist.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	_, err := fmt.Fprintln(w, dist.Render())
	return err
}

// Batch writes one row per batch input
func Batch(w io.Writer, results []*worker.CheckResult, color bool) error {
	tw := newTable()
	tw.AppendHeader(table.Row{"#", "Input", "Verdict", "Confidence", "Cached", "Error"})
	for _, r := range results {
		row := table.Row{r.Index + 1, util.TruncateRunes(r.Input, maxCellRunes), "", "", "", ""}
		if r.Error != nil {
			row[2] = paintVerdict(model.VerdictError, color)
			row[5] = util.TruncateRunes(r.Error.Error(), maxCellRunes)
		} else if r.Result != nil {
			row[2] = paintVerdict(r.Result.Verdict, color)
			row[3] = Percent(r.Result.Confidence, 1)
			row[4] = r.Result.Cached
		}
		tw.AppendRow(row)
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
