package service

import (
	"context"

	"github.com/vibecatcher/event-service/internal/repository"
)

// AnalyticsReport is the full admin dashboard payload.
type AnalyticsReport struct {
	Totals               repository.AnalyticsTotals          `json:"totals"`
	Sentiment            repository.SentimentBreakdown       `json:"sentiment"`
	RegistrationsByEvent []repository.EventRegistrationCount `json:"registrationsByEvent"`
}

// AnalyticsService serves aggregate reporting for admins.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
}

// NewAnalyticsService builds the service.
func NewAnalyticsService(analytics repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics}
}

// Report assembles the dashboard in one call.
func (s *AnalyticsService) Report(ctx context.Context) (*AnalyticsReport, error) {
	totals, err := s.analytics.Totals(ctx)
	if err != nil {
		return nil, err
	}
	sentiment, err := s.analytics.SentimentBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	byEvent, err := s.analytics.RegistrationsByEvent(ctx)
	if err != nil {
		return nil, err
	}
	return &AnalyticsReport{
		Totals:               *totals,
		Sentiment:            *sentiment,
		RegistrationsByEvent: byEvent,
	}, nil
}
