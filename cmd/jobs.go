package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/jobscout/jobscout/internal/filtering"
	"github.com/jobscout/jobscout/internal/ranking"
	"github.com/jobscout/jobscout/internal/talenthub"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List open jobs, with optional filters and sorting",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runJobs(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().Bool("mine", false, "only jobs posted by the current user")
	jobsCmd.Flags().String("status", "", "job status to request from the server")
	jobsCmd.Flags().String("location", "", "location to match (substring, case-insensitive)")
	jobsCmd.Flags().Bool("remote", false, "only remote jobs")
	jobsCmd.Flags().Bool("onsite", false, "only onsite jobs")
	jobsCmd.Flags().String("salary", "", `salary bucket, e.g. "5-10 LPA"`)
	jobsCmd.Flags().String("experience", "", `experience bucket, e.g. "2-3 years"`)
	jobsCmd.Flags().StringSlice("type", nil, "job types (full-time, part-time, contract, internship)")
	jobsCmd.Flags().String("sort", string(ranking.Relevance), "sort key: relevance, date, salary-high, salary-low")
	jobsCmd.Flags().String("save", "", "bookmark the given job id and exit")
	jobsCmd.Flags().String("unsave", "", "remove the given job id from bookmarks and exit")
	jobsCmd.Flags().Bool("saved", false, "only bookmarked jobs")
}

func runJobs(cmd *cobra.Command) error {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	store := newSessionStore(config, logger)

	if id, _ := cmd.Flags().GetString("save"); id != "" {
		if err := store.SaveJob(id); err != nil {
			return err
		}
		fmt.Printf("%s saved job %s\n", color.GreenString("✓"), id)
		return nil
	}

	if id, _ := cmd.Flags().GetString("unsave"); id != "" {
		if err := store.UnsaveJob(id); err != nil {
			return err
		}
		fmt.Printf("%s removed job %s from bookmarks\n", color.GreenString("✓"), id)
		return nil
	}

	client, err := newClient(config, logger)
	if err != nil {
		return err
	}

	mine, _ := cmd.Flags().GetBool("mine")
	status, _ := cmd.Flags().GetString("status")

	jobs, err := client.GetJobs(cmd.Context(), mine, status)
	if err != nil {
		return fmt.Errorf("getting jobs: %w", err)
	}

	logger.Info("getting jobs", zap.Int("count", jobs.Len()))

	if saved, _ := cmd.Flags().GetBool("saved"); saved {
		jobs = jobs.Where(func(j *talenthub.Job) bool { return store.IsSaved(j.ID) })
	}

	filters, err := filtering.Build(jobCriteria(cmd, config))
	if err != nil {
		return err
	}

	jobs = filtering.Run(filters, jobs, logger)

	sortKey, _ := cmd.Flags().GetString("sort")
	if err := ranking.SortJobs(jobs, ranking.Key(sortKey)); err != nil {
		return err
	}

	if jobs.Len() == 0 {
		fmt.Println("No jobs match the given criteria.")
		return nil
	}

	for _, job := range jobs.Items {
		renderJob(job, store.IsSaved(job.ID))
	}

	fmt.Printf("\n%d job(s)\n", jobs.Len())

	return nil
}

// jobCriteria merges configured filter defaults with flag overrides. A flag
// set on the command line always wins.
func jobCriteria(cmd *cobra.Command, config *Config) filtering.Criteria {
	var c filtering.Criteria
	if config.Filters != nil {
		c = *config.Filters
	}

	flags := cmd.Flags()

	if flags.Changed("location") {
		c.Location, _ = flags.GetString("location")
	}
	if flags.Changed("remote") {
		c.Remote, _ = flags.GetBool("remote")
	}
	if flags.Changed("onsite") {
		c.Onsite, _ = flags.GetBool("onsite")
	}
	if flags.Changed("salary") {
		c.SalaryBucket, _ = flags.GetString("salary")
	}
	if flags.Changed("experience") {
		c.ExperienceBucket, _ = flags.GetString("experience")
	}
	if flags.Changed("type") {
		c.JobTypes, _ = flags.GetStringSlice("type")
	}

	return c
}

func renderJob(job *talenthub.Job, saved bool) {
	marker := " "
	if saved {
		marker = color.YellowString("★")
	}

	fmt.Printf("%s %s  %s\n", marker, color.New(color.Bold).Sprint(job.Title), color.New(color.Faint).Sprint(job.ID))

	details := []string{}
	if job.Location != "" {
		details = append(details, job.Location)
	}
	if job.Site != "" {
		details = append(details, job.Site)
	}
	if job.Type != "" {
		details = append(details, job.Type)
	}
	if salary := formatSalary(job); salary != "" {
		details = append(details, salary)
	}
	if exp := job.Experience(); exp != nil {
		details = append(details, fmt.Sprintf("%.0f+ years", *exp))
	}

	if len(details) > 0 {
		fmt.Printf("    %s\n", strings.Join(details, " · "))
	}
}

// formatSalary prefers the server's display string and falls back to the
// normalized LPA bounds.
func formatSalary(job *talenthub.Job) string {
	if job.SalaryRange != "" {
		return job.SalaryRange
	}

	r := job.Salary()
	lo, hi := r.Bounds()

	switch {
	case r.Min == nil && r.Max == nil:
		return ""
	case r.Max == nil || math.IsInf(hi, 1):
		return fmt.Sprintf("%.4g+ LPA", lo)
	case r.Min == nil:
		return fmt.Sprintf("up to %.4g LPA", hi)
	default:
		return fmt.Sprintf("%.4g-%.4g LPA", lo, hi)
	}
}
