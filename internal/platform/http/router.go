package http

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/papudim/sales-report/internal/business/report"
	"github.com/papudim/sales-report/pkg/model"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportBuilder produces sales summaries and rendered reports.
type ReportBuilder interface {
	Summary(ctx context.Context) (model.Summary, error)
	Build(ctx context.Context) (report.Report, error)
}

// Router wires HTTP handlers.
type Router struct {
	reports  ReportBuilder
	logger   *zap.Logger
	timeout  time.Duration
	origins  string
	pdfName  string
	xlsxName string
}

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins string
	FetchTimeout   time.Duration
	PDFName        string
	WorkbookName   string
}

func NewRouter(reports ReportBuilder, logger *zap.Logger, opts Options) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		reports:  reports,
		logger:   logger,
		timeout:  opts.FetchTimeout,
		origins:  opts.AllowedOrigins,
		pdfName:  defaultString(opts.PDFName, "sales_report.pdf"),
		xlsxName: defaultString(opts.WorkbookName, "sales_report.xlsx"),
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/summary", r.getSummary)
		api.GET("/report.pdf", r.downloadPDF)
		api.GET("/report.xlsx", r.downloadWorkbook)
	}

	return router
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	var allowlist []string
	anyOrigin := false
	for _, o := range strings.Split(r.origins, ",") {
		switch t := strings.TrimSpace(o); t {
		case "":
		case "*":
			anyOrigin = true
		default:
			allowlist = append(allowlist, t)
		}
	}
	if len(allowlist) == 0 {
		anyOrigin = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case anyOrigin:
			c.Header("Access-Control-Allow-Origin", "*")
		case slices.Contains(allowlist, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *Router) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), r.timeout)
}

func (r *Router) getSummary(c *gin.Context) {
	top := -1
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top must be a non-negative integer"})
			return
		}
		top = n
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	summary, err := r.reports.Summary(ctx)
	if err != nil {
		r.fail(c, err)
		return
	}
	if top >= 0 {
		summary.TopItems = summary.ItemsByQuantity[:min(top, len(summary.ItemsByQuantity))]
	}
	c.JSON(http.StatusOK, summary)
}

func (r *Router) downloadPDF(c *gin.Context) {
	r.download(c, r.pdfName, pdfContentType, func(rep report.Report) []byte { return rep.PDF })
}

func (r *Router) downloadWorkbook(c *gin.Context) {
	r.download(c, r.xlsxName, xlsxContentType, func(rep report.Report) []byte { return rep.Workbook })
}

func (r *Router) download(c *gin.Context, filename, contentType string, pick func(report.Report) []byte) {
	ctx, cancel := r.requestContext(c)
	defer cancel()

	rep, err := r.reports.Build(ctx)
	if err != nil {
		r.fail(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("X-Report-Run-Id", rep.Summary.RunID)
	c.Data(http.StatusOK, contentType, pick(rep))
}

func (r *Router) fail(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrCoercion):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), status.Code(err) == codes.DeadlineExceeded:
		code = http.StatusGatewayTimeout
	case errors.Is(err, model.ErrSourceUnavailable):
		code = http.StatusBadGateway
	}
	r.logger.Warn("report request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", code),
		zap.Error(err),
	)
	c.JSON(code, gin.H{"error": err.Error()})
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
