package talenthub

import (
	"context"
	"fmt"
	"time"

	"github.com/jobscout/jobscout/internal/normalize"
)

// ScoreBreakdown is the per-dimension detail behind a candidate's final score.
type ScoreBreakdown struct {
	SemanticScore    float64  `json:"semantic_score"`
	SkillsScore      float64  `json:"skills_score"`
	ExperienceScore  float64  `json:"experience_score"`
	AIRelevanceScore float64  `json:"ai_relevance_score"`
	AIOverallMatch   *float64 `json:"ai_overall_match_score"`
	MatchedSkills    []string `json:"matched_skills"`
	MissingSkills    []string `json:"missing_skills"`
}

// Candidate is one entry of a job's ranked candidate list.
type Candidate struct {
	ApplicationID string `json:"application_id"`
	Profile       struct {
		Name string `json:"name"`
	} `json:"candidate"`
	FinalScore *float64        `json:"final_score"`
	MatchScore *float64        `json:"match_score"`
	Breakdown  *ScoreBreakdown `json:"breakdown"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (c *Candidate) Name() string {
	return c.Profile.Name
}

// Score resolves the candidate's 0-100 match score from the available
// upstream fields: final score, then AI overall match, then the legacy
// fractional match score.
func (c *Candidate) Score() int {
	var aiOverall *float64
	if c.Breakdown != nil {
		aiOverall = c.Breakdown.AIOverallMatch
	}

	return normalize.ResolveScore(c.FinalScore, aiOverall, c.MatchScore)
}

type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

type candidatesResponse struct {
	Candidates []*Candidate `json:"candidates"`
}

// GetRankedCandidates returns the server-ranked candidates for a posting.
func (c *Client) GetRankedCandidates(ctx context.Context, jobID string) (*Candidates, error) {
	path := fmt.Sprintf("%s/%s/ranked_candidates", jobsPath, jobID)

	var response candidatesResponse
	if err := c.getJSON(ctx, path, nil, defaultTimeout, &response); err != nil {
		return nil, err
	}

	return &Candidates{Items: response.Candidates}, nil
}
