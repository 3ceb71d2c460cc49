package usecase

import (
	"context"
	"fmt"
	"time"

	"portfolio-resume/internal/domain"
)

const recentExportLimit = 5

type RecentExport struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Template     string `json:"template"`
	LastEdited   string `json:"last_edited"`
	ThumbnailKey string `json:"thumbnail_key,omitempty"`
}

type Dashboard struct {
	Stats  ExportStats    `json:"stats"`
	Recent []RecentExport `json:"recent"`
}

// DashboardService summarises a user's export history.
type DashboardService struct {
	repo ExportRepo
	now  func() time.Time
}

func NewDashboardService(repo ExportRepo) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now}
}

func (s *DashboardService) ForOwner(ctx context.Context, ownerID string) (*Dashboard, error) {
	out := &Dashboard{Stats: ExportStats{TemplatesUsed: []string{}}, Recent: []RecentExport{}}
	if s.repo == nil {
		return out, nil
	}

	stats, err := s.repo.StatsForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("export stats: %w", err)
	}
	if stats.TemplatesUsed == nil {
		stats.TemplatesUsed = []string{}
	}
	out.Stats = stats

	recs, err := s.repo.ListByOwner(ctx, ownerID, recentExportLimit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	for _, r := range recs {
		out.Recent = append(out.Recent, s.recent(r))
	}
	return out, nil
}

func (s *DashboardService) recent(r domain.ExportRecord) RecentExport {
	return RecentExport{
		ID:           r.ID.String(),
		Name:         r.Title,
		Template:     r.Template,
		LastEdited:   RelativeAge(s.now().Sub(r.CreatedAt)),
		ThumbnailKey: r.ThumbnailKey,
	}
}

// RelativeAge renders a duration the way the dashboard lists it, e.g.
// "2 hours ago".
func RelativeAge(d time.Duration) string {
	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago", unit)
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}
