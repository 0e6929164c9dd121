package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementGamesCompletedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementGamesCompletedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementShotsFiredCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementShotsFiredCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGameServerAnalytics(ctx context.Context, serverIpNet pqtype.Inet) (GameServerAnalytic, error) {
	return a.queries.GetGameServerAnalytics(ctx, serverIpNet)
}
