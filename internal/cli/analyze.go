package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/services"
)

type analyzeFlags struct {
	handle    string
	timeRange string
	topN      int
}

func newAnalyzeCommand(e *env) *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Prints analytics for an imported snapshot",
	}
	cmd.PersistentFlags().StringVar(&f.handle, "handle", "", "snapshot handle to analyze")
	cmd.PersistentFlags().StringVarP(&f.timeRange, "time-range", "t", string(domain.MediumTerm),
		"short_term, medium_term or long_term")
	_ = cmd.MarkPersistentFlagRequired("handle")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "popularity",
			Short: "Rank-weighted popularity of the top tracks",
			Args:  cobra.NoArgs,
			RunE: e.withService(func(cmd *cobra.Command, args []string) error {
				stats, err := e.svc.Orchestrator.PopularityScore(cmd.Context(), f.handle, domain.TimeRange(f.timeRange))
				if err != nil {
					return err
				}
				return renderPopularity(cmd.OutOrStdout(), stats)
			}),
		},
		newGenresCommand(e, f),
		&cobra.Command{
			Use:   "moods",
			Short: "Mood distribution of the recently played tracks",
			Long:  "Classifies recently played tracks by their audio features. Requires a configured Spotify token or client credentials.",
			Args:  cobra.NoArgs,
			RunE: e.withService(func(cmd *cobra.Command, args []string) error {
				dist, err := e.svc.Orchestrator.MoodDistribution(cmd.Context(), f.handle)
				if err != nil {
					return err
				}
				return renderShares(cmd.OutOrStdout(), "Mood", dist.Labels, dist.Counts, dist.Percentages,
					fmt.Sprintf("%d tracks classified", dist.TotalTracks))
			}),
		},
		&cobra.Command{
			Use:   "personality",
			Short: "Big Five personality profile inferred from the top artists",
			Args:  cobra.NoArgs,
			RunE: e.withService(func(cmd *cobra.Command, args []string) error {
				report, err := e.svc.Orchestrator.PersonalityPrediction(cmd.Context(), f.handle, domain.TimeRange(f.timeRange))
				if err != nil {
					return err
				}
				return renderPersonality(cmd.OutOrStdout(), report)
			}),
		},
	)
	return cmd
}

func newGenresCommand(e *env, f *analyzeFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "Rank-weighted genre distribution of the top artists",
		Args:  cobra.NoArgs,
		RunE: e.withService(func(cmd *cobra.Command, args []string) error {
			dist, err := e.svc.Orchestrator.GenreDistribution(cmd.Context(), f.handle, domain.TimeRange(f.timeRange), f.topN)
			if err != nil {
				return err
			}
			return renderShares(cmd.OutOrStdout(), "Genre", dist.Labels, dist.Counts, dist.Percentages,
				fmt.Sprintf("%d weighted mentions across %d genres", dist.TotalGenreMentions, dist.UniqueGenreCount))
		}),
	}
	cmd.Flags().IntVarP(&f.topN, "top-n", "n", 10, "number of genres to show")
	return cmd
}

func renderPopularity(out io.Writer, s domain.PopularityStats) error {
	return renderTable(out, []string{"Metric", "Value"}, [][]string{
		{"Average popularity", formatFloat(s.AveragePopularity)},
		{"Weighted average", formatFloat(s.WeightedAverage)},
		{"Min popularity", strconv.Itoa(s.MinPopularity)},
		{"Max popularity", strconv.Itoa(s.MaxPopularity)},
		{"Tracks", strconv.Itoa(s.TrackCount)},
	}, "")
}

func renderShares(out io.Writer, kind string, labels []string, counts []int, pct map[string]float64, summary string) error {
	rows := make([][]string, 0, len(labels))
	for i, label := range labels {
		rows = append(rows, []string{strconv.Itoa(i + 1), label, strconv.Itoa(counts[i]), formatFloat(pct[label]) + "%"})
	}
	return renderTable(out, []string{"#", kind, "Count", "Share"}, rows, summary)
}

func renderPersonality(out io.Writer, r services.PersonalityReport) error {
	p := r.Personality
	rows := make([][]string, 0, len(domain.AllTraits))
	for _, t := range domain.AllTraits {
		rows = append(rows, []string{t.String(), formatFloat(p.Scores.Get(t)), p.Descriptions[t.String()]})
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "Type: %s (confidence %s)\n", p.PersonalityType, formatFloat(p.Confidence))
	fmt.Fprintf(&summary, "Top genres: %s\n", strings.Join(r.TopGenres, ", "))
	if len(p.Metadata.CulturalRegions) > 0 {
		fmt.Fprintf(&summary, "Cultural regions: %s\n", strings.Join(p.Metadata.CulturalRegions, ", "))
	}
	fmt.Fprintf(&summary, "Audio features analyzed: %d", r.AudioFeaturesCount)

	return renderTable(out, []string{"Trait", "Score", "Description"}, rows, summary.String())
}

func renderTable(out io.Writer, header []string, rows [][]string, summary string) error {
	table := tablewriter.NewWriter(out)
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if summary != "" {
		fmt.Fprintln(out, summary)
	}
	return nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
