package service

import (
	"context"
	"fmt"
	"math"

	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/repository"
)

type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	cohortRepo    repository.CohortRepository
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, cohortRepo repository.CohortRepository) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		cohortRepo:    cohortRepo,
	}
}

type CohortOverview struct {
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
}

type CohortMetrics struct {
	TotalGoals      int     `json:"totalGoals"`
	CompletedGoals  int     `json:"completedGoals"`
	CompletionRate  float64 `json:"completionRate"`
	SubmissionRate  float64 `json:"submissionRate"`
	EngagementScore float64 `json:"engagementScore"`
}

type CohortAnalytics struct {
	Cohort  CohortOverview `json:"cohort"`
	Metrics CohortMetrics  `json:"metrics"`
	Members []model.Member `json:"members"`
}

// ForCohort reports goal and check-in metrics for one cohort. Facilitators
// and admins only.
func (s *AnalyticsService) ForCohort(ctx context.Context, cohortID string, actor *model.User) (*CohortAnalytics, error) {
	if !actor.Role.IsModerator() {
		return nil, apperrors.Forbidden("Only facilitators can view cohort analytics")
	}

	cohort, err := s.cohortRepo.FindByID(ctx, cohortID)
	if err != nil {
		return nil, fmt.Errorf("find cohort: %w", err)
	}
	if cohort == nil {
		return nil, apperrors.NotFound("Cohort")
	}

	stats, err := s.analyticsRepo.CohortStats(ctx, cohortID)
	if err != nil {
		return nil, fmt.Errorf("cohort stats: %w", err)
	}

	members, err := s.cohortRepo.FindMembers(ctx, cohortID)
	if err != nil {
		return nil, fmt.Errorf("find members: %w", err)
	}

	metrics := CohortMetrics{
		TotalGoals:     stats.TotalGoals,
		CompletedGoals: stats.CompletedGoals,
	}
	if stats.TotalGoals > 0 {
		metrics.CompletionRate = round1(float64(stats.CompletedGoals) / float64(stats.TotalGoals) * 100)
	}
	if stats.MemberCount > 0 {
		metrics.SubmissionRate = round1(float64(stats.UsersWithGoals) / float64(stats.MemberCount) * 100)
		metrics.EngagementScore = round1(float64(stats.TotalCheckIns) / float64(stats.MemberCount))
	}

	return &CohortAnalytics{
		Cohort:  CohortOverview{Name: cohort.Name, MemberCount: stats.MemberCount},
		Metrics: metrics,
		Members: members,
	}, nil
}

type AdminAnalytics struct {
	TotalCohorts      int                   `json:"totalCohorts"`
	TotalUsers        int                   `json:"totalUsers"`
	ActiveUsers       int                   `json:"activeUsers"`
	TotalGoals        int                   `json:"totalGoals"`
	CompletedGoals    int                   `json:"completedGoals"`
	AvgCompletionRate float64               `json:"avgCompletionRate"`
	Cohorts           []model.CohortSummary `json:"cohorts"`
}

// ForAdmin reports platform-wide metrics across all cohorts. Admins only;
// an active user is one who created a goal in the last seven days.
func (s *AnalyticsService) ForAdmin(ctx context.Context, actor *model.User) (*AdminAnalytics, error) {
	if actor.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("Only admins can view platform analytics")
	}

	stats, err := s.analyticsRepo.AdminStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}

	summaries, err := s.analyticsRepo.CohortSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("cohort summaries: %w", err)
	}

	result := &AdminAnalytics{
		TotalCohorts:   stats.TotalCohorts,
		TotalUsers:     stats.TotalUsers,
		ActiveUsers:    stats.ActiveUsers,
		TotalGoals:     stats.TotalGoals,
		CompletedGoals: stats.CompletedGoals,
		Cohorts:        summaries,
	}
	if stats.TotalGoals > 0 {
		result.AvgCompletionRate = round1(float64(stats.CompletedGoals) / float64(stats.TotalGoals) * 100)
	}
	return result, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
