package report

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/papudim/sales-report/internal/business/sales"
	"github.com/papudim/sales-report/pkg/model"
	"go.uber.org/zap"
)

// OrderSource yields order records for one aggregation run.
type OrderSource interface {
	Orders(ctx context.Context) iter.Seq2[model.OrderRecord, error]
}

// Options controls report content.
type Options struct {
	Title string
	TopN  int
}

// Report is a fully rendered run: the summary and both artifacts.
type Report struct {
	Summary  model.Summary
	PDF      []byte
	Workbook []byte
}

// Service runs fetch, aggregate and render for sales reports.
type Service struct {
	source OrderSource
	logger *zap.Logger
	opts   Options
	now    func() time.Time
}

func NewService(source OrderSource, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = "Sales Report"
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	return &Service{
		source: source,
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// Summary aggregates every order currently in the source.
func (s *Service) Summary(ctx context.Context) (model.Summary, error) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("runId", runID))
	started := s.now()

	res, err := sales.Aggregate(s.source.Orders(ctx))
	if err != nil {
		log.Error("aggregation failed", zap.Error(err))
		return model.Summary{}, fmt.Errorf("aggregate orders: %w", err)
	}

	summary := sales.Summarize(res, s.opts.TopN)
	summary.RunID = runID
	summary.GeneratedAt = s.now().UTC()

	log.Info("orders aggregated",
		zap.Int("ordersSeen", res.OrdersSeen),
		zap.Int("paidOrders", res.PaidOrders),
		zap.Int("items", len(res.QuantityByItem)),
		zap.Int("days", len(res.RevenueByDate)),
		zap.String("totalRevenue", res.TotalRevenue.StringFixed(2)),
		zap.Duration("elapsed", s.now().Sub(started)),
	)
	return summary, nil
}

// Build aggregates and renders both artifacts in memory. Nothing is returned
// unless every step succeeds.
func (s *Service) Build(ctx context.Context) (Report, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return Report{}, err
	}
	log := s.logger.With(zap.String("runId", summary.RunID))

	qtyChart, err := QuantityChart(summary.ItemsByQuantity)
	if err != nil {
		return Report{}, err
	}
	timelineChart, err := TimelineChart(summary.Timeline)
	if err != nil {
		return Report{}, err
	}

	doc, err := RenderPDF(s.opts.Title, summary, qtyChart, timelineChart)
	if err != nil {
		return Report{}, err
	}
	book, err := RenderWorkbook(summary)
	if err != nil {
		return Report{}, err
	}

	log.Debug("report rendered", zap.Int("pdfBytes", len(doc)), zap.Int("workbookBytes", len(book)))
	return Report{Summary: summary, PDF: doc, Workbook: book}, nil
}
