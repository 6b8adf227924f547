package service

import (
	"brewlog/internal/modules/stats/domain"
)

// StatsService is a thin seam over the pure analytics so usecases and tests
// share one entry point.
type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

func (s *StatsService) Ratio(samples []domain.Sample) (domain.BrewRatioAnalysis, bool) {
	return domain.AnalyzeRatio(samples)
}

func (s *StatsService) Time(samples []domain.Sample) (domain.ExtractionTimeAnalysis, bool) {
	return domain.AnalyzeTime(samples)
}

func (s *StatsService) Trends(samples []domain.Sample) (domain.ShotTrends, bool) {
	return domain.AnalyzeTrends(samples)
}
