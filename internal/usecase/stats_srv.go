package usecase

import (
	"context"
	"fmt"

	"bus-booking/internal/dto/response"

	"go.uber.org/zap"
)

type StatsService interface {
	MemberCount(ctx context.Context) (*response.MemberCountResponse, error)
}

type statsService struct {
	members MemberDirectory
	log     *zap.Logger
}

func NewStatsService(members MemberDirectory, log *zap.Logger) StatsService {
	return &statsService{
		members: members,
		log:     log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) MemberCount(ctx context.Context) (*response.MemberCountResponse, error) {
	count, err := s.members.MemberCount(ctx)
	if err != nil {
		s.log.Error("Failed to fetch member count", zap.Error(err))
		return nil, fmt.Errorf("fetch member count: %w", err)
	}

	return &response.MemberCountResponse{Count: count}, nil
}
