package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/crisisdesk/disaster-response-api/internal/cache"
	"github.com/crisisdesk/disaster-response-api/internal/reliefweb"
)

// Fetcher is the upstream the dashboard reshapes.
type Fetcher interface {
	FetchActive(ctx context.Context) (reliefweb.Document, error)
}

// MapFeature is one resolvable disaster location for the map view.
type MapFeature struct {
	Name    string
	Type    string
	Status  string
	Country string
	Lon     float64
	Lat     float64
}

type QuickStat struct {
	Value  any    `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
}

type QuickStats struct {
	ActiveDisasters   QuickStat `json:"active_disasters"`
	ResponseTeams     QuickStat `json:"response_teams"`
	AvgResponseTime   QuickStat `json:"avg_response_time"`
	ResourcesDeployed QuickStat `json:"resources_deployed"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

type Stats struct {
	QuickStats      QuickStats    `json:"quick_stats"`
	DisasterTypes   []TypeCount   `json:"disaster_types"`
	AffectedRegions []RegionCount `json:"affected_regions"`
}

type Alert struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Type     string `json:"type"`
	Time     string `json:"time"`
}

type ActivityDay struct {
	Date      string `json:"date"`
	Responses int    `json:"responses"`
	Alerts    int    `json:"alerts"`
}

type Metric struct {
	Value  int    `json:"value"`
	Change int    `json:"change"`
	Trend  string `json:"trend"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type RegionDisasters struct {
	Region    string `json:"region"`
	Disasters int    `json:"disasters"`
}

type Insights struct {
	DisasterData struct {
		MonthlyTrends    []MonthCount      `json:"monthly_trends"`
		TypeDistribution []TypeCount       `json:"type_distribution"`
		RegionalData     []RegionDisasters `json:"regional_data"`
	} `json:"disaster_data"`
	QuickStats struct {
		ActiveDisasters Metric `json:"active_disasters"`
		PeopleAffected  Metric `json:"people_affected"`
		AvgResponseTime Metric `json:"avg_response_time"`
	} `json:"quick_stats"`
}

// Service reshapes the most recent upstream fetch into the dashboard views.
// Every view is a pure function of one snapshot; a failed fetch degrades to
// empty aggregates, never an error response.
type Service struct {
	fetcher Fetcher
	slot    *cache.Slot[reliefweb.Document]
	now     func() time.Time
}

func NewService(fetcher Fetcher, ttl time.Duration) *Service {
	return &Service{
		fetcher: fetcher,
		slot:    cache.NewSlot[reliefweb.Document](ttl),
		now:     time.Now,
	}
}

// snapshot returns the cached document, fetching on a miss. Fetch failures
// are not cached so the next request retries upstream.
func (s *Service) snapshot(ctx context.Context) reliefweb.Document {
	if doc, ok := s.slot.Get(); ok {
		return doc
	}

	doc, err := s.fetcher.FetchActive(ctx)
	if err != nil {
		slog.Error("disaster fetch failed, serving empty snapshot", "error", err)
		return reliefweb.Document{}
	}

	s.slot.Set(doc)
	return doc
}

// Refresh replaces the snapshot from upstream, bypassing the cache window.
func (s *Service) Refresh(ctx context.Context) error {
	doc, err := s.fetcher.FetchActive(ctx)
	if err != nil {
		return err
	}
	s.slot.Set(doc)
	return nil
}

// MapData resolves each record's country through the centroid table.
// Unresolvable countries are dropped here but still counted in Stats.
func (s *Service) MapData(ctx context.Context) []MapFeature {
	doc := s.snapshot(ctx)

	features := make([]MapFeature, 0, len(doc.Data))
	for _, rec := range doc.Data {
		country := rec.Fields.CountryName()
		coords, ok := resolveCountry(country)
		if !ok {
			slog.Debug("dropping record with unresolved country", "country", country, "name", rec.Fields.Name)
			continue
		}
		features = append(features, MapFeature{
			Name:    rec.Fields.Name,
			Type:    rec.Fields.PrimaryType(),
			Status:  rec.Fields.Status,
			Country: country,
			Lon:     coords.Lon,
			Lat:     coords.Lat,
		})
	}
	return features
}

func (s *Service) Stats(ctx context.Context) Stats {
	doc := s.snapshot(ctx)

	typeCounts := map[string]int{}
	regionCounts := map[string]int{}
	for _, rec := range doc.Data {
		typeCounts[rec.Fields.PrimaryType()]++
		for _, country := range rec.Fields.Country {
			if country.Name != "" {
				regionCounts[country.Name]++
			}
		}
	}

	total := len(doc.Data)

	return Stats{
		QuickStats: QuickStats{
			ActiveDisasters: QuickStat{Value: total, Change: "+2", Trend: "up"},
			ResponseTeams:   QuickStat{Value: len(regionCounts) * 3, Change: "+5", Trend: "up"},
			// Presentational placeholders: no historical data exists to
			// derive these from a single snapshot.
			AvgResponseTime:   QuickStat{Value: "8.5m", Change: "-2.3", Trend: "down"},
			ResourcesDeployed: QuickStat{Value: total * 100, Change: "+123", Trend: "up"},
		},
		DisasterTypes:   sortedTypeCounts(typeCounts),
		AffectedRegions: sortedRegionCounts(regionCounts),
	}
}

// RecentAlerts returns the five newest records; a record in alert status is
// surfaced as Critical, everything else as Update.
func (s *Service) RecentAlerts(ctx context.Context) []Alert {
	doc := s.snapshot(ctx)

	alerts := make([]Alert, 0, 5)
	for _, rec := range doc.Data {
		if len(alerts) == 5 {
			break
		}
		kind := "Update"
		if rec.Fields.Status == "alert" {
			kind = "Critical"
		}
		created := ""
		if !rec.Fields.Date.Created.IsZero() {
			created = rec.Fields.Date.Created.Format(time.RFC3339)
		}
		alerts = append(alerts, Alert{
			Title:    rec.Fields.Name,
			Location: rec.Fields.CountryName(),
			Type:     kind,
			Time:     created,
		})
	}
	return alerts
}

// Activity buckets record creation over the last seven days.
func (s *Service) Activity(ctx context.Context) []ActivityDay {
	doc := s.snapshot(ctx)

	perDay := map[string]int{}
	for _, rec := range doc.Data {
		if rec.Fields.Date.Created.IsZero() {
			continue
		}
		perDay[rec.Fields.Date.Created.Format("2006-01-02")]++
	}

	now := s.now()
	days := make([]ActivityDay, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		count := perDay[date]
		days = append(days, ActivityDay{
			Date:      date,
			Alerts:    count,
			Responses: count * 3,
		})
	}
	return days
}

// Insights aggregates monthly trends and distributions. Change figures come
// from a naive split at a 30-day cutoff over creation timestamps; there is
// no historical persistence behind them.
func (s *Service) Insights(ctx context.Context) Insights {
	doc := s.snapshot(ctx)
	now := s.now()

	var out Insights

	out.DisasterData.MonthlyTrends = make([]MonthCount, 0, 12)
	for i := 0; i < 12; i++ {
		month := now.AddDate(0, -i, 0)
		count := 0
		for _, rec := range doc.Data {
			created := rec.Fields.Date.Created
			if created.Year() == month.Year() && created.Month() == month.Month() {
				count++
			}
		}
		out.DisasterData.MonthlyTrends = append(out.DisasterData.MonthlyTrends, MonthCount{
			Month: month.Format("January 2006"),
			Count: count,
		})
	}

	typeCounts := map[string]int{}
	regionCounts := map[string]int{}
	active := 0
	before := 0
	cutoff := now.AddDate(0, 0, -30)
	for _, rec := range doc.Data {
		typeCounts[rec.Fields.PrimaryType()]++
		regionCounts[rec.Fields.CountryName()]++
		if rec.Fields.Status == "alert" || rec.Fields.Status == "ongoing" {
			active++
		}
		if !rec.Fields.Date.Created.IsZero() && rec.Fields.Date.Created.Before(cutoff) {
			before++
		}
	}

	out.DisasterData.TypeDistribution = sortedTypeCounts(typeCounts)
	regional := make([]RegionDisasters, 0, len(regionCounts))
	for _, rc := range sortedRegionCounts(regionCounts) {
		regional = append(regional, RegionDisasters{Region: rc.Region, Disasters: rc.Count})
	}
	out.DisasterData.RegionalData = regional

	change := active - before
	out.QuickStats.ActiveDisasters = Metric{Value: active, Change: abs(change), Trend: trend(change)}
	out.QuickStats.PeopleAffected = Metric{Value: len(doc.Data), Change: 0, Trend: "stable"}
	out.QuickStats.AvgResponseTime = Metric{Value: 0, Change: 0, Trend: "stable"}

	return out
}

func sortedTypeCounts(counts map[string]int) []TypeCount {
	out := make([]TypeCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, TypeCount{Type: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

func sortedRegionCounts(counts map[string]int) []RegionCount {
	out := make([]RegionCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, RegionCount{Region: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Region < out[j].Region
	})
	return out
}

func trend(change int) string {
	switch {
	case change > 0:
		return "up"
	case change < 0:
		return "down"
	default:
		return "stable"
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
