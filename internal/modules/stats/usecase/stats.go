package usecase

import (
	"context"

	shotin "brewlog/internal/modules/shot/port/in"
	"brewlog/internal/modules/stats/domain"
	"brewlog/internal/modules/stats/dto"
	statsin "brewlog/internal/modules/stats/port/in"
	"brewlog/internal/modules/stats/service"
	"brewlog/internal/platform/brew"
)

type Interactor struct {
	svc   *service.StatsService
	shots shotin.Usecase
}

func NewInteractor(svc *service.StatsService, shots shotin.Usecase) statsin.Usecase {
	return &Interactor{svc: svc, shots: shots}
}

func (i *Interactor) AnalyzeRatio(ctx context.Context, beanID string) (dto.RatioAnalysisOutput, error) {
	samples, err := i.samples(ctx, beanID)
	if err != nil {
		return dto.RatioAnalysisOutput{}, err
	}
	analysis, ok := i.svc.Ratio(samples)
	if !ok {
		return dto.RatioAnalysisOutput{Insufficient: true, Required: brew.MinSamplesRatio}, nil
	}
	return dto.RatioAnalysisOutput{
		Required:     brew.MinSamplesRatio,
		Distribution: toDistribution(analysis.Distribution),
		Excluded:     analysis.Excluded,
		PctUnder:     analysis.PctUnder,
		PctTypical:   analysis.PctTypical,
		PctOptimal:   analysis.PctOptimal,
		PctOver:      analysis.PctOver,
	}, nil
}

func (i *Interactor) AnalyzeTime(ctx context.Context, beanID string) (dto.TimeAnalysisOutput, error) {
	samples, err := i.samples(ctx, beanID)
	if err != nil {
		return dto.TimeAnalysisOutput{}, err
	}
	analysis, ok := i.svc.Time(samples)
	if !ok {
		return dto.TimeAnalysisOutput{Insufficient: true, Required: brew.MinSamplesTime}, nil
	}
	return dto.TimeAnalysisOutput{
		Required:     brew.MinSamplesTime,
		Distribution: toDistribution(analysis.Distribution),
		Excluded:     analysis.Excluded,
		PctFast:      analysis.PctFast,
		PctOptimal:   analysis.PctOptimal,
		PctSlow:      analysis.PctSlow,
	}, nil
}

func (i *Interactor) AnalyzeTrends(ctx context.Context, beanID string) (dto.TrendsOutput, error) {
	samples, err := i.samples(ctx, beanID)
	if err != nil {
		return dto.TrendsOutput{}, err
	}
	trends, ok := i.svc.Trends(samples)
	if !ok {
		return dto.TrendsOutput{Insufficient: true, Required: brew.MinSamplesTrends}, nil
	}
	return dto.TrendsOutput{
		Required:     brew.MinSamplesTrends,
		SampleSize:   trends.SampleSize,
		Earlier:      dto.HalfSummary{Shots: trends.Earlier.Shots, MeanRatio: trends.Earlier.MeanRatio, MeanTime: trends.Earlier.MeanTime},
		Later:        dto.HalfSummary{Shots: trends.Later.Shots, MeanRatio: trends.Later.MeanRatio, MeanTime: trends.Later.MeanTime},
		RatioDelta:   trends.RatioDelta,
		TimeDelta:    trends.TimeDelta,
		Class:        string(trends.Class),
		ShotsPerDay:  trends.ShotsPerDay,
		DaysAnalyzed: trends.DaysAnalyzed,
	}, nil
}

// samples takes a chronological snapshot of shot history; the analytics
// never observe a live, mutating collection.
func (i *Interactor) samples(ctx context.Context, beanID string) ([]domain.Sample, error) {
	shots, err := i.shots.History(ctx, beanID)
	if err != nil {
		return nil, err
	}
	samples := make([]domain.Sample, 0, len(shots))
	for _, shot := range shots {
		samples = append(samples, domain.Sample{
			DoseGrams:         shot.DoseGrams,
			YieldGrams:        shot.YieldGrams,
			ExtractionSeconds: shot.ExtractionSeconds,
			PulledAt:          shot.PulledAt,
		})
	}
	return samples, nil
}

func toDistribution(d domain.Distribution) dto.Distribution {
	return dto.Distribution{Count: d.Count, Mean: d.Mean, Median: d.Median, Min: d.Min, Max: d.Max}
}
