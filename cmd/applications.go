package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jobscout/jobscout/internal/normalize"
	"github.com/jobscout/jobscout/internal/talenthub"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "Inspect and manage your applications",
}

var applicationsMineCmd = &cobra.Command{
	Use:   "mine <job-id>",
	Short: "Show your application for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *talenthub.Client, _ *zap.Logger) error {
			application, err := client.GetMyApplication(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderApplication(application)
			return nil
		})
	},
}

var applicationsGetCmd = &cobra.Command{
	Use:   "get <application-id>",
	Short: "Show a single application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *talenthub.Client, _ *zap.Logger) error {
			shared, _ := cmd.Flags().GetBool("shared")

			get := client.GetApplication
			if shared {
				get = client.GetSharedApplication
			}

			application, err := get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderApplication(application)
			return nil
		})
	},
}

var applicationsDeleteCmd = &cobra.Command{
	Use:   "delete <application-id>",
	Short: "Withdraw an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *talenthub.Client, logger *zap.Logger) error {
			if auto, _ := cmd.Flags().GetBool("yes"); !auto {
				prompt := promptui.Select{
					Label: fmt.Sprintf("Withdraw application %s?", args[0]),
					Items: []string{PromptYes, PromptNo},
				}

				_, action, err := prompt.Run()
				if err != nil {
					return err
				}
				if action != PromptYes {
					logger.Info("exiting", zap.String("reason", "got no from prompt"))
					return nil
				}
			}

			if err := client.DeleteApplication(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("%s application %s withdrawn\n", color.GreenString("✓"), args[0])
			return nil
		})
	},
}

var applicationsDownloadCmd = &cobra.Command{
	Use:   "download <application-id>",
	Short: "Download the resume attached to an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *talenthub.Client, logger *zap.Logger) error {
			body, err := client.DownloadResume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer body.Close()

			output, _ := cmd.Flags().GetString("output")
			if output == "" || output == "-" {
				_, err := io.Copy(os.Stdout, body)
				return err
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer file.Close()

			written, err := io.Copy(file, body)
			if err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			logger.Info("resume downloaded",
				zap.String("application_id", args[0]),
				zap.String("file", output),
				zap.Int64("bytes", written),
			)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(applicationsCmd)

	applicationsGetCmd.Flags().Bool("shared", false, "use a shared (public) application link")
	applicationsDeleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	applicationsDownloadCmd.Flags().StringP("output", "o", "", "output file (default is stdout)")

	applicationsCmd.AddCommand(
		applicationsMineCmd,
		applicationsGetCmd,
		applicationsDeleteCmd,
		applicationsDownloadCmd,
	)
}

// withClient wires the logger, config and API client for a subcommand.
func withClient(fn func(*talenthub.Client, *zap.Logger) error) error {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	client, err := newClient(config, logger)
	if err != nil {
		return err
	}

	return fn(client, logger)
}

func renderApplication(application *talenthub.Application) {
	fmt.Printf("%s %s\n", color.New(color.Bold).Sprint("Application"), application.ID)
	fmt.Printf("  job:     %s\n", application.JobID)
	fmt.Printf("  status:  %s\n", application.Status)
	if application.ResumeName != "" {
		fmt.Printf("  resume:  %s\n", application.ResumeName)
	}
	if !application.CreatedAt.IsZero() {
		fmt.Printf("  applied: %s\n", application.CreatedAt.Format("2006-01-02 15:04"))
	}

	score := normalizeApplicationScore(application)
	fmt.Printf("  score:   %s\n", renderRing(score))

	if application.AIExplanation != "" {
		fmt.Printf("  notes:   %s\n", application.AIExplanation)
	}
}

func normalizeApplicationScore(application *talenthub.Application) int {
	return normalize.ResolveScore(application.FinalScore, nil, application.MatchScore)
}
