package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/kpi"
	"github.com/blaisecz/health-trends/internal/normalize"
	"github.com/blaisecz/health-trends/internal/provider"
)

const dateLayout = "2006-01-02"

// AnalyticsService reads lab analytics documents and flags markers.
type AnalyticsService interface {
	// List returns the patient's documents between req.From and req.To
	// (default: the last year), newest first.
	List(ctx context.Context, req *domain.AnalyticsRequest) (*domain.AnalyticsListResponse, error)
	// Get returns one document with its markers grouped by category.
	Get(ctx context.Context, patientID, documentID, lookup string) (*domain.AnalyticsDocument, error)
}

type analyticsService struct {
	provider provider.Provider
	now      func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(p provider.Provider) AnalyticsService {
	return &analyticsService{provider: p, now: time.Now}
}

func (s *analyticsService) List(ctx context.Context, req *domain.AnalyticsRequest) (*domain.AnalyticsListResponse, error) {
	history, _ := kpi.HistoryRange(s.now())
	from, to := history.QueryFrom(), history.QueryTo()
	if req.From != "" {
		from = req.From + "T00:00:00.000Z"
	}
	if req.To != "" {
		to = req.To + "T23:59:59.000Z"
	}
	if req.From != "" && req.To != "" && req.From > req.To {
		return nil, fmt.Errorf("%w: from must not be after to", domain.ErrInvalidInput)
	}

	raw, err := s.provider.FetchCollection(ctx, domain.SourceAnalytics, provider.Query{
		UserID:   req.PatientID,
		From:     from,
		To:       to,
		FindByHC: req.Lookup == provider.LookupHC,
	})
	if err != nil {
		return nil, err
	}

	docs := make([]domain.AnalyticsDocument, 0, len(raw))
	for _, rec := range raw {
		doc := ParseAnalyticsDocument(rec)
		doc.Categories = nil
		docs = append(docs, doc)
	}
	sortDocumentsNewestFirst(docs)

	return &domain.AnalyticsListResponse{Data: docs}, nil
}

func (s *analyticsService) Get(ctx context.Context, patientID, documentID, lookup string) (*domain.AnalyticsDocument, error) {
	raw, err := s.provider.FetchAnalyticsDocument(ctx, patientID, documentID, lookup == provider.LookupHC)
	if err != nil {
		return nil, err
	}
	doc := ParseAnalyticsDocument(raw)
	if doc.ID == "" {
		doc.ID = documentID
	}
	return &doc, nil
}

// ParseAnalyticsDocument converts a raw provider document. Every marker is
// flagged against its reference range and grouped by category in the order
// categories first appear.
func ParseAnalyticsDocument(rec domain.RawRecord) domain.AnalyticsDocument {
	doc := domain.AnalyticsDocument{
		ID:      stringField(rec["id"]),
		Type:    stringField(rec["type"]),
		Summary: stringField(rec["respuestaChatgpt"]),
		Markers: []domain.Marker{},
	}
	for _, key := range []string{"date", "fechaSubida"} {
		if t, ok := normalize.ExtractTime(rec[key]); ok {
			doc.Date = t.UTC().Format(dateLayout)
			break
		}
	}

	rawMarkers, _ := rec["markers"].([]any)
	byCategory := map[string]int{}
	for _, item := range rawMarkers {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		marker := domain.Marker{
			Name:           stringField(m["analytic"]),
			Value:          m["value"],
			Unit:           stringField(m["unit"]),
			Reference:      stringField(m["reference"]),
			Category:       stringField(m["category"]),
			CatDisplayName: stringField(m["catDisplayName"]),
		}
		if marker.Name == "" {
			marker.Name = stringField(m["name"])
		}
		marker.OutOfRange = marker.IsOutOfRange()
		if marker.OutOfRange {
			doc.OutOfRange++
		}
		doc.Markers = append(doc.Markers, marker)

		idx, seen := byCategory[marker.Category]
		if !seen {
			idx = len(doc.Categories)
			byCategory[marker.Category] = idx
			name := marker.CatDisplayName
			if name == "" {
				name = marker.Category
			}
			doc.Categories = append(doc.Categories, domain.MarkerCategory{
				Category:       marker.Category,
				CatDisplayName: name,
			})
		}
		doc.Categories[idx].Markers = append(doc.Categories[idx].Markers, marker)
		if marker.OutOfRange {
			doc.Categories[idx].OutOfRange++
		}
	}
	return doc
}

// AnalyticsSummary builds the lab context sent to the LLM.
func AnalyticsSummary(raw []domain.RawRecord) *domain.AnalyticsContext {
	if len(raw) == 0 {
		return nil
	}
	docs := make([]domain.AnalyticsDocument, 0, len(raw))
	for _, rec := range raw {
		docs = append(docs, ParseAnalyticsDocument(rec))
	}
	sortDocumentsNewestFirst(docs)

	out := &domain.AnalyticsContext{
		TotalTests:  len(docs),
		TestTypes:   []string{},
		RecentTests: []domain.RecentAnalytic{},
	}
	seen := map[string]bool{}
	for i, doc := range docs {
		if doc.Type != "" && !seen[doc.Type] {
			seen[doc.Type] = true
			out.TestTypes = append(out.TestTypes, doc.Type)
		}
		if i < 3 {
			out.RecentTests = append(out.RecentTests, domain.RecentAnalytic{
				Date:         doc.Date,
				Type:         doc.Type,
				MarkersCount: len(doc.Markers),
			})
		}
	}
	return out
}

// sortDocumentsNewestFirst orders by date; undated documents go last.
func sortDocumentsNewestFirst(docs []domain.AnalyticsDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Date == "" || docs[j].Date == "" {
			return docs[j].Date == "" && docs[i].Date != ""
		}
		return docs[i].Date > docs[j].Date
	})
}

func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
