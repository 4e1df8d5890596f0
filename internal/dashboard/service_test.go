package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crisisdesk/disaster-response-api/internal/reliefweb"
)

type fakeFetcher struct {
	doc   reliefweb.Document
	err   error
	calls int
}

func (f *fakeFetcher) FetchActive(ctx context.Context) (reliefweb.Document, error) {
	f.calls++
	return f.doc, f.err
}

func record(name, status, disasterType, country string, created time.Time) reliefweb.Record {
	return reliefweb.Record{
		Fields: reliefweb.Fields{
			Name:    name,
			Status:  status,
			Type:    []reliefweb.NameField{{Name: disasterType}},
			Country: []reliefweb.NameField{{Name: country}},
			Date:    reliefweb.DateField{Created: created},
		},
	}
}

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func testService(fetcher Fetcher) *Service {
	s := NewService(fetcher, time.Hour)
	s.now = func() time.Time { return testNow }
	return s
}

func TestMapData_DropsUnresolvedCountries(t *testing.T) {
	fetcher := &fakeFetcher{doc: reliefweb.Document{Data: []reliefweb.Record{
		record("Nepal Floods", "alert", "Flood", "Nepal", testNow),
		record("Mystery Event", "ongoing", "Storm", "Atlantis", testNow),
		record("Vietnam Typhoon", "ongoing", "Tropical Cyclone", "Viet Nam", testNow),
	}}}
	s := testService(fetcher)

	features := s.MapData(context.Background())
	if len(features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(features))
	}
	if features[0].Name != "Nepal Floods" || features[0].Country != "Nepal" {
		t.Errorf("first feature = %+v", features[0])
	}
	if features[0].Lat == 0 && features[0].Lon == 0 {
		t.Error("feature missing coordinates")
	}
	if features[1].Country != "Viet Nam" {
		t.Errorf("alias country should keep the upstream name, got %q", features[1].Country)
	}
}

func TestStats_CountsAndOrdering(t *testing.T) {
	fetcher := &fakeFetcher{doc: reliefweb.Document{Data: []reliefweb.Record{
		record("A", "alert", "Flood", "Nepal", testNow),
		record("B", "ongoing", "Flood", "India", testNow),
		record("C", "ongoing", "Earthquake", "Nepal", testNow),
		record("D", "ongoing", "Drought", "Atlantis", testNow),
	}}}
	s := testService(fetcher)

	stats := s.Stats(context.Background())

	if stats.QuickStats.ActiveDisasters.Value != 4 {
		t.Errorf("active disasters = %v", stats.QuickStats.ActiveDisasters.Value)
	}
	// Three distinct regions, unresolvable ones included.
	if stats.QuickStats.ResponseTeams.Value != 9 {
		t.Errorf("response teams = %v", stats.QuickStats.ResponseTeams.Value)
	}
	if stats.QuickStats.ResourcesDeployed.Value != 400 {
		t.Errorf("resources deployed = %v", stats.QuickStats.ResourcesDeployed.Value)
	}

	if len(stats.DisasterTypes) != 3 {
		t.Fatalf("disaster types = %+v", stats.DisasterTypes)
	}
	if stats.DisasterTypes[0] != (TypeCount{Type: "Flood", Count: 2}) {
		t.Errorf("top type = %+v", stats.DisasterTypes[0])
	}
	// Ties break alphabetically.
	if stats.DisasterTypes[1].Type != "Drought" || stats.DisasterTypes[2].Type != "Earthquake" {
		t.Errorf("tie ordering = %+v", stats.DisasterTypes[1:])
	}

	if len(stats.AffectedRegions) != 3 {
		t.Fatalf("regions = %+v", stats.AffectedRegions)
	}
	if stats.AffectedRegions[0] != (RegionCount{Region: "Nepal", Count: 2}) {
		t.Errorf("top region = %+v", stats.AffectedRegions[0])
	}
}

func TestStats_FetchFailureDegradesToEmpty(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("upstream down")}
	s := testService(fetcher)

	stats := s.Stats(context.Background())
	if stats.QuickStats.ActiveDisasters.Value != 0 {
		t.Errorf("active disasters = %v", stats.QuickStats.ActiveDisasters.Value)
	}
	if stats.DisasterTypes == nil || len(stats.DisasterTypes) != 0 {
		t.Errorf("disaster types should be empty non-nil, got %#v", stats.DisasterTypes)
	}
	if stats.AffectedRegions == nil || len(stats.AffectedRegions) != 0 {
		t.Errorf("regions should be empty non-nil, got %#v", stats.AffectedRegions)
	}
}

func TestSnapshot_CachesSuccessNotFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("upstream down")}
	s := testService(fetcher)

	s.Stats(context.Background())
	s.Stats(context.Background())
	if fetcher.calls != 2 {
		t.Errorf("failed fetches should not be cached, got %d calls", fetcher.calls)
	}

	fetcher.err = nil
	fetcher.doc = reliefweb.Document{Data: []reliefweb.Record{record("A", "alert", "Flood", "Nepal", testNow)}}
	s.Stats(context.Background())
	s.MapData(context.Background())
	s.RecentAlerts(context.Background())
	if fetcher.calls != 3 {
		t.Errorf("successful fetch should be cached across views, got %d calls", fetcher.calls)
	}
}

func TestRecentAlerts_StatusAndLimit(t *testing.T) {
	created := time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC)
	data := []reliefweb.Record{
		record("Critical One", "alert", "Flood", "Nepal", created),
		record("Ongoing One", "ongoing", "Storm", "India", created),
	}
	for i := 0; i < 5; i++ {
		data = append(data, record("Filler", "ongoing", "Flood", "Chad", created))
	}
	fetcher := &fakeFetcher{doc: reliefweb.Document{Data: data}}
	s := testService(fetcher)

	alerts := s.RecentAlerts(context.Background())
	if len(alerts) != 5 {
		t.Fatalf("expected 5 alerts, got %d", len(alerts))
	}
	if alerts[0].Type != "Critical" {
		t.Errorf("alert status should surface as Critical, got %q", alerts[0].Type)
	}
	if alerts[1].Type != "Update" {
		t.Errorf("ongoing status should surface as Update, got %q", alerts[1].Type)
	}
	if alerts[0].Time != created.Format(time.RFC3339) {
		t.Errorf("time = %q", alerts[0].Time)
	}
	if alerts[0].Location != "Nepal" {
		t.Errorf("location = %q", alerts[0].Location)
	}
}

func TestActivity_SevenDayBuckets(t *testing.T) {
	fetcher := &fakeFetcher{doc: reliefweb.Document{Data: []reliefweb.Record{
		record("Today A", "alert", "Flood", "Nepal", testNow),
		record("Today B", "ongoing", "Flood", "Nepal", testNow.Add(-2*time.Hour)),
		record("Three days ago", "ongoing", "Storm", "India", testNow.AddDate(0, 0, -3)),
		record("Too old", "ongoing", "Storm", "India", testNow.AddDate(0, 0, -10)),
	}}}
	s := testService(fetcher)

	days := s.Activity(context.Background())
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0].Date != testNow.AddDate(0, 0, -6).Format("2006-01-02") {
		t.Errorf("first bucket = %q, want oldest day", days[0].Date)
	}

	last := days[6]
	if last.Date != testNow.Format("2006-01-02") || last.Alerts != 2 || last.Responses != 6 {
		t.Errorf("today bucket = %+v", last)
	}
	if days[3].Alerts != 1 {
		t.Errorf("three-days-ago bucket = %+v", days[3])
	}
	for i, d := range days[:3] {
		if d.Alerts != 0 {
			t.Errorf("unexpected count in bucket %d: %+v", i, d)
		}
	}
}

func TestInsights_TrendsAndMetrics(t *testing.T) {
	fetcher := &fakeFetcher{doc: reliefweb.Document{Data: []reliefweb.Record{
		record("Recent alert", "alert", "Flood", "Nepal", testNow.AddDate(0, 0, -5)),
		record("Recent ongoing", "ongoing", "Flood", "India", testNow.AddDate(0, 0, -10)),
		record("Old ongoing", "ongoing", "Earthquake", "Nepal", testNow.AddDate(0, -3, 0)),
		record("Past event", "past", "Storm", "Chad", testNow.AddDate(0, 0, -2)),
	}}}
	s := testService(fetcher)

	insights := s.Insights(context.Background())

	trends := insights.DisasterData.MonthlyTrends
	if len(trends) != 12 {
		t.Fatalf("expected 12 monthly buckets, got %d", len(trends))
	}
	if trends[0].Month != "August 2026" || trends[0].Count != 3 {
		t.Errorf("current month = %+v", trends[0])
	}
	if trends[3].Month != "May 2026" || trends[3].Count != 1 {
		t.Errorf("three months back = %+v", trends[3])
	}

	// 3 active (alert+ongoing) minus 1 created before the 30-day cutoff.
	active := insights.QuickStats.ActiveDisasters
	if active.Value != 3 || active.Change != 2 || active.Trend != "up" {
		t.Errorf("active metric = %+v", active)
	}
	if insights.QuickStats.PeopleAffected.Value != 4 {
		t.Errorf("people affected = %+v", insights.QuickStats.PeopleAffected)
	}
	if insights.QuickStats.AvgResponseTime.Trend != "stable" {
		t.Errorf("avg response time = %+v", insights.QuickStats.AvgResponseTime)
	}

	if len(insights.DisasterData.TypeDistribution) != 3 {
		t.Errorf("type distribution = %+v", insights.DisasterData.TypeDistribution)
	}
	if insights.DisasterData.RegionalData[0] != (RegionDisasters{Region: "Nepal", Disasters: 2}) {
		t.Errorf("top region = %+v", insights.DisasterData.RegionalData[0])
	}
}

func TestRefresh_BypassesCache(t *testing.T) {
	fetcher := &fakeFetcher{doc: reliefweb.Document{}}
	s := testService(fetcher)

	s.Stats(context.Background())
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 2 {
		t.Errorf("Refresh should always hit upstream, got %d calls", fetcher.calls)
	}

	fetcher.err = errors.New("upstream down")
	if err := s.Refresh(context.Background()); err == nil {
		t.Error("Refresh should report fetch failure")
	}
}
