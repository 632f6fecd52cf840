package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"festival-companion-backend/config"
	"festival-companion-backend/internal/calendar"
)

// Service periodically fetches the published spreadsheet's CSV tabs and
// rebuilds the in-memory schedule snapshot the API serves from.
type Service struct {
	cfg    *config.Config
	client *http.Client

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewService creates and initializes a new sheet sync service.
func NewService(cfg *config.Config) *Service {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.Sheets.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.Sheets.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Sheet sync will not use a proxy.", cfg.Sheets.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Service{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}
}

// Snapshot returns the most recent successfully built snapshot, or nil
// when no sync has completed yet.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Run starts the sync loop.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Sheets.Enabled {
		log.Println("Sheet sync is disabled. Not starting.")
		return
	}
	log.Println("Starting sheet sync service...")

	s.SyncOnce(ctx)

	timer := time.NewTimer(s.cfg.Sheets.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Sheet sync service shutting down.")
			return
		case <-timer.C:
			s.SyncOnce(ctx)
			timer.Reset(s.cfg.Sheets.Interval)
		}
	}
}

// SyncOnce fetches every configured CSV source and swaps in a fresh
// snapshot. If any source fails the previous snapshot is kept: serving
// stale schedule data beats serving half a festival.
func (s *Service) SyncOnce(ctx context.Context) {
	log.Println("Executing sheet sync cycle...")

	records := make(map[string][]calendar.Record, len(s.cfg.Sheets.Sources))
	for _, source := range s.cfg.Sheets.Sources {
		recs, err := s.fetchSource(ctx, source)
		if err != nil {
			log.Printf("Error fetching %s sheet: %v. Keeping previous snapshot.", source.Category, err)
			return
		}
		records[source.Category] = append(records[source.Category], recs...)
		log.Printf("Fetched %d %s rows", len(recs), source.Category)
	}

	snapshot := s.buildSnapshot(records)

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	log.Printf("Sheet sync cycle finished: %d days scheduled.", len(snapshot.Days))
}

// sourceConfigs maps a sheet category to its normalization config.
var sourceConfigs = map[string]calendar.SourceConfig{
	calendar.CategoryArtist:   calendar.ArtistSource,
	calendar.CategoryActivity: calendar.ActivitySource,
	calendar.CategoryMeal:     calendar.MealSource,
	calendar.CategoryPerm:     calendar.PermSource,
}

// buildSnapshot normalizes the raw rows through the calendar engine.
func (s *Service) buildSnapshot(records map[string][]calendar.Record) *Snapshot {
	allowed := s.cfg.Sheets.FestivalDays

	var scheduleSources []calendar.EventsByDay
	var shifts calendar.EventsByDay
	for category, recs := range records {
		cfg, ok := sourceConfigs[category]
		if !ok {
			log.Printf("Warning: no source config for sheet category %q; skipping %d rows", category, len(recs))
			continue
		}
		byDay := calendar.GroupByDay(recs, cfg, allowed)
		if category == calendar.CategoryPerm {
			shifts = byDay
		} else {
			scheduleSources = append(scheduleSources, byDay)
		}
	}

	schedule := calendar.MergeEventsByDay(scheduleSources...)
	for day := range schedule {
		schedule[day] = calendar.SortItems(schedule[day])
	}

	return &Snapshot{
		FetchedAt: time.Now().UTC(),
		Records:   records,
		Days:      orderDays(schedule, shifts, allowed),
		Schedule:  schedule,
		Shifts:    shifts,
	}
}

// orderDays lists the day names present across both calendars, in the
// configured festival order when one is given, weekday order otherwise.
func orderDays(schedule, shifts calendar.EventsByDay, festivalDays []string) []string {
	present := make(map[string]bool)
	for day := range schedule {
		present[day] = true
	}
	for day := range shifts {
		present[day] = true
	}

	var days []string
	if len(festivalDays) > 0 {
		for _, day := range festivalDays {
			if present[day] {
				days = append(days, day)
				delete(present, day)
			}
		}
	}
	var rest []string
	for day := range present {
		rest = append(rest, day)
	}
	sort.Strings(rest)
	return append(days, rest...)
}

// fetchSource downloads and parses one CSV tab.
func (s *Service) fetchSource(ctx context.Context, source config.SheetSource) ([]calendar.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range s.cfg.Sheets.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	return ParseCSV(resp.Body)
}

// ParseCSV reads a published-spreadsheet CSV export into records keyed by
// the header row. Ragged rows are tolerated; rows shorter than the header
// simply leave the trailing fields unset.
func ParseCSV(r io.Reader) ([]calendar.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var records []calendar.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		rec := make(calendar.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
