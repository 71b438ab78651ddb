package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jobscout/jobscout/internal/normalize"
	"github.com/jobscout/jobscout/internal/resume"
	"github.com/jobscout/jobscout/internal/tracker"
	"github.com/jobscout/jobscout/internal/utils"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	previewLimit = 600
)

var errDeclined = errors.New("apply declined")

var applyCmd = &cobra.Command{
	Use:   "apply <job-id> <resume-file>",
	Short: "Apply to a job with a resume and watch the match score come in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runApply(cmd, args[0], args[1])
		if errors.Is(err, errDeclined) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	applyCmd.Flags().Bool("save-only", false, "submit without waiting for scoring")
}

func runApply(cmd *cobra.Command, jobID, path string) error {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	client, err := newClient(config, logger)
	if err != nil {
		return err
	}

	doc, err := resume.Inspect(path)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") && doc.Preview == "" {
		logger.Warn("no text could be extracted from the document",
			zap.String("file", doc.Name),
			zap.String("hint", "the pdf may be image-only; scoring quality will suffer"),
		)
	}

	if doc.Preview != "" {
		fmt.Println(color.New(color.Bold).Sprint("Resume preview"))
		fmt.Println(utils.TruncateForLog(doc.Preview, previewLimit))
		fmt.Println()
	}

	if auto, _ := cmd.Flags().GetBool("yes"); !auto {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Apply to job %s with %s?", jobID, doc.Name),
			Items: []string{PromptYes, PromptNo},
		}

		_, action, err := prompt.Run()
		if err != nil {
			return err
		}
		if action != PromptYes {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return errDeclined
		}
	}

	file, err := doc.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	tr := tracker.New(client, logger)
	ctx := cmd.Context()

	if saveOnly, _ := cmd.Flags().GetBool("save-only"); saveOnly {
		outcome, err := tr.SaveOnly(ctx, jobID, doc.Name, file)
		if err != nil {
			return err
		}

		if outcome.AlreadyApplied {
			fmt.Printf("%s You have already applied to this job.\n", color.YellowString("⚠"))
			return nil
		}

		fmt.Printf("%s Application saved", color.GreenString("✓"))
		if outcome.Application != nil {
			fmt.Printf(" (id %s)", outcome.Application.ID)
		}
		fmt.Println()

		return nil
	}

	tr.Start(ctx, jobID, doc.Name, file)

	if err := watchProgress(ctx, tr); err != nil {
		return err
	}

	state := tr.State()
	if state.Status == tracker.StatusError {
		fmt.Printf("\r%s %s\n", color.RedString("✗"), state.Err)
		return nil
	}

	fmt.Printf("\r%s %s\n", color.GreenString("✓"), doneMessage(state))

	revealScore(ctx, applicationScore(state))

	return nil
}

// watchProgress redraws the tracker state until it reaches a terminal state
// or the context dies.
func watchProgress(ctx context.Context, tr *tracker.Tracker) error {
	for {
		select {
		case <-ctx.Done():
			tr.Cancel()
			return ctx.Err()
		case <-tr.Done():
			return nil
		default:
		}

		state := tr.State()
		fmt.Printf("\r%s %3d%%  %-40s", spinnerFrame(), state.Percent, progressLabel(state))

		if err := utils.WaitFor(ctx, 120*time.Millisecond); err != nil {
			tr.Cancel()
			return err
		}
	}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinnerFrame() string {
	return spinnerFrames[time.Now().UnixMilli()/120%int64(len(spinnerFrames))]
}

func progressLabel(state tracker.State) string {
	if state.Message != "" {
		return state.Message
	}

	switch state.Status {
	case tracker.StatusSubmitting:
		return "uploading resume"
	case tracker.StatusPolling:
		return "scoring in progress"
	default:
		return string(state.Status)
	}
}

func doneMessage(state tracker.State) string {
	if state.Message != "" {
		return state.Message
	}
	return "application processed"
}

// applicationScore resolves the display score from the finished task result.
// The result map is read field by field: the server mixes numeric ids and
// string timestamps into the same object, so decoding the whole thing into a
// typed struct would fail and take the scores down with it.
func applicationScore(state tracker.State) int {
	final := resultNumber(state.Result, "final_score")

	aiOverall := resultNumber(state.Result, "ai_overall_match_score")
	if aiOverall == nil {
		if breakdown, ok := state.Result["breakdown"].(map[string]any); ok {
			aiOverall = resultNumber(breakdown, "ai_overall_match_score")
		}
	}

	legacy := resultNumber(state.Result, "match_score")

	return normalize.ResolveScore(final, aiOverall, legacy)
}

// resultNumber picks a numeric field out of a decoded JSON object. Absent
// and non-numeric values both map to nil.
func resultNumber(m map[string]any, key string) *float64 {
	if m == nil {
		return nil
	}

	switch v := m[key].(type) {
	case float64:
		return &v
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	}

	return nil
}

// revealScore animates the score from zero to its final value, then prints
// the ring gauge.
func revealScore(ctx context.Context, score int) {
	animation := tracker.NewAnimation(score, tracker.DefaultRevealDuration, time.Now())

	_ = animation.Run(ctx, func(value int) {
		fmt.Printf("\rMatch score: %s", scoreString(value))
	})

	fmt.Printf("\rMatch score: %s\n", renderRing(score))
}
