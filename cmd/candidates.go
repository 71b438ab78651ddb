package cmd

import (
	"fmt"
	"strings"

	"github.com/jobscout/jobscout/internal/normalize"
	"github.com/jobscout/jobscout/internal/ranking"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ringRadius matches the dashboard's score badge geometry.
const ringRadius = 40.0

var candidatesCmd = &cobra.Command{
	Use:   "candidates <job-id>",
	Short: "Show ranked candidates for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCandidates(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)

	candidatesCmd.Flags().String("sort", string(ranking.ScoreDesc), "sort key: relevance, name, score, score-asc")
	candidatesCmd.Flags().Bool("skills", false, "show matched and missing skills")
}

func runCandidates(cmd *cobra.Command, jobID string) error {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	client, err := newClient(config, logger)
	if err != nil {
		return err
	}

	candidates, err := client.GetRankedCandidates(cmd.Context(), jobID)
	if err != nil {
		return fmt.Errorf("getting ranked candidates: %w", err)
	}

	logger.Info("getting ranked candidates",
		zap.String("job_id", jobID),
		zap.Int("count", candidates.Len()),
	)

	sortKey, _ := cmd.Flags().GetString("sort")
	if err := ranking.SortCandidates(candidates, ranking.Key(sortKey)); err != nil {
		return err
	}

	if candidates.Len() == 0 {
		fmt.Println("No candidates yet.")
		return nil
	}

	showSkills, _ := cmd.Flags().GetBool("skills")

	for _, c := range candidates.Items {
		score := c.Score()

		fmt.Printf("%s  %s %s\n",
			renderRing(score),
			color.New(color.Bold).Sprint(c.Name()),
			color.New(color.Faint).Sprint(c.ApplicationID),
		)

		if c.Status != "" {
			fmt.Printf("%s status: %s\n", strings.Repeat(" ", ringWidth+2), c.Status)
		}

		if showSkills && c.Breakdown != nil {
			indent := strings.Repeat(" ", ringWidth+2)
			if len(c.Breakdown.MatchedSkills) > 0 {
				fmt.Printf("%s%s %s\n", indent, color.GreenString("+"), strings.Join(c.Breakdown.MatchedSkills, ", "))
			}
			if len(c.Breakdown.MissingSkills) > 0 {
				fmt.Printf("%s%s %s\n", indent, color.RedString("-"), strings.Join(c.Breakdown.MissingSkills, ", "))
			}
		}
	}

	fmt.Printf("\n%d candidate(s)\n", candidates.Len())

	return nil
}

// ringWidth is the rendered width of the score ring gauge, score included.
const ringWidth = 10 + 5

// renderRing draws the circular score badge as a linear gauge. The filled
// fraction comes from the ring's visible arc, so the terminal view and the
// dashboard badge always agree.
func renderRing(score int) string {
	ring := normalize.Ring(score, ringRadius)

	const cells = 10
	filled := int((ring.Circumference - ring.DashOffset) / ring.Circumference * cells)
	if filled > cells {
		filled = cells
	}
	if filled < 0 {
		filled = 0
	}

	gauge := strings.Repeat("●", filled) + strings.Repeat("○", cells-filled)

	return fmt.Sprintf("%s %s", gauge, scoreString(score))
}

func scoreString(score int) string {
	switch {
	case score >= 80:
		return color.GreenString("%3d%%", score)
	case score >= 50:
		return color.YellowString("%3d%%", score)
	default:
		return color.RedString("%3d%%", score)
	}
}
