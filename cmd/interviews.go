package cmd

import (
	"fmt"
	"time"

	"github.com/jobscout/jobscout/internal/talenthub"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var interviewsCmd = &cobra.Command{
	Use:   "interviews",
	Short: "Schedule and review interviews",
}

var interviewsListCmd = &cobra.Command{
	Use:   "list <job-id>",
	Short: "List interviews for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *talenthub.Client, logger *zap.Logger) error {
			interviews, err := client.ListInterviews(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			logger.Info("getting interviews",
				zap.String("job_id", args[0]),
				zap.Int("count", len(interviews)),
			)

			if len(interviews) == 0 {
				fmt.Println("No interviews scheduled.")
				return nil
			}

			for _, interview := range interviews {
				renderInterview(interview)
			}
			return nil
		})
	},
}

var interviewsGetCmd = &cobra.Command{
	Use:   "get <interview-id>",
	Short: "Show a single interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *talenthub.Client, _ *zap.Logger) error {
			interview, err := client.GetInterview(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderInterview(interview)
			return nil
		})
	},
}

var interviewsScheduleCmd = &cobra.Command{
	Use:   "schedule <application-id>",
	Short: "Schedule an interview for an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *talenthub.Client, _ *zap.Logger) error {
			req, err := interviewRequest(cmd)
			if err != nil {
				return err
			}

			interview, err := client.ScheduleInterview(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			fmt.Printf("%s interview scheduled\n", color.GreenString("✓"))
			renderInterview(interview)
			return nil
		})
	},
}

var interviewsUpdateCmd = &cobra.Command{
	Use:   "update <interview-id>",
	Short: "Reschedule or annotate an interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *talenthub.Client, _ *zap.Logger) error {
			req, err := interviewRequest(cmd)
			if err != nil {
				return err
			}

			interview, err := client.UpdateInterview(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			renderInterview(interview)
			return nil
		})
	},
}

var interviewsCompleteCmd = &cobra.Command{
	Use:   "complete <interview-id>",
	Short: "Mark an interview as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *talenthub.Client, _ *zap.Logger) error {
			interview, err := client.CompleteInterview(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderInterview(interview)
			return nil
		})
	},
}

var interviewsEvaluateCmd = &cobra.Command{
	Use:   "evaluate <interview-id>",
	Short: "Record a rating and feedback for a completed interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *talenthub.Client, _ *zap.Logger) error {
			rating, _ := cmd.Flags().GetFloat64("rating")
			feedback, _ := cmd.Flags().GetString("feedback")

			interview, err := client.EvaluateInterview(cmd.Context(), args[0], &talenthub.InterviewEvaluation{
				Rating:   rating,
				Feedback: feedback,
			})
			if err != nil {
				return err
			}

			renderInterview(interview)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(interviewsCmd)

	for _, c := range []*cobra.Command{interviewsScheduleCmd, interviewsUpdateCmd} {
		c.Flags().String("mode", "", "interview mode (video, phone, onsite)")
		c.Flags().String("at", "", "scheduled time, RFC 3339 (e.g. 2026-09-05T14:00:00+05:30)")
		c.Flags().String("notes", "", "notes for the candidate")
	}

	interviewsEvaluateCmd.Flags().Float64("rating", 0, "rating from 0 to 5")
	interviewsEvaluateCmd.Flags().String("feedback", "", "free-text feedback")
	interviewsEvaluateCmd.MarkFlagRequired("rating")

	interviewsCmd.AddCommand(
		interviewsListCmd,
		interviewsGetCmd,
		interviewsScheduleCmd,
		interviewsUpdateCmd,
		interviewsCompleteCmd,
		interviewsEvaluateCmd,
	)
}

func interviewRequest(cmd *cobra.Command) (*talenthub.InterviewRequest, error) {
	req := &talenthub.InterviewRequest{}
	req.Mode, _ = cmd.Flags().GetString("mode")
	req.Notes, _ = cmd.Flags().GetString("notes")

	if at, _ := cmd.Flags().GetString("at"); at != "" {
		scheduled, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("parsing --at: %w", err)
		}
		req.ScheduledAt = scheduled
	}

	return req, nil
}

func renderInterview(interview *talenthub.Interview) {
	fmt.Printf("%s %s\n", color.New(color.Bold).Sprint("Interview"), interview.ID)
	fmt.Printf("  application: %s\n", interview.ApplicationID)
	fmt.Printf("  status:      %s\n", interview.Status)
	if interview.Mode != "" {
		fmt.Printf("  mode:        %s\n", interview.Mode)
	}
	if !interview.ScheduledAt.IsZero() {
		fmt.Printf("  scheduled:   %s\n", interview.ScheduledAt.Format("2006-01-02 15:04"))
	}
	if interview.Rating != nil {
		fmt.Printf("  rating:      %.1f/5\n", *interview.Rating)
	}
	if interview.Feedback != "" {
		fmt.Printf("  feedback:    %s\n", interview.Feedback)
	}
	if interview.Notes != "" {
		fmt.Printf("  notes:       %s\n", interview.Notes)
	}
}
