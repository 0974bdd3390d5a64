package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/papudim/sales-report/internal/business/report"
	"github.com/papudim/sales-report/pkg/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubSource struct {
	records []model.OrderRecord
	err     error
}

func (s stubSource) Orders(context.Context) iter.Seq2[model.OrderRecord, error] {
	return func(yield func(model.OrderRecord, error) bool) {
		for _, rec := range s.records {
			if !yield(rec, nil) {
				return
			}
		}
		if s.err != nil {
			yield(model.OrderRecord{}, s.err)
		}
	}
}

func newTestRouter(src stubSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := report.NewService(src, zap.NewNop(), report.Options{TopN: 5})
	return NewRouter(svc, zap.NewNop(), Options{AllowedOrigins: "https://dash.example.com"})
}

func orders() []model.OrderRecord {
	price := decimal.RequireFromString("5")
	return []model.OrderRecord{
		{ID: "x-1000", Status: model.StatusPaid, Total: decimal.RequireFromString("20"), Items: []model.LineItem{{Name: "latte", Quantity: 2, UnitPrice: price}}},
		{ID: "y-1000", Status: model.StatusPaid, Total: decimal.RequireFromString("9"), Items: []model.LineItem{{Name: "latte", Quantity: 1, UnitPrice: price}, {Name: "tea", Quantity: 1, UnitPrice: price}}},
		{ID: "z-1000", Status: "cancelled", Total: decimal.RequireFromString("100")},
	}
}

func serve(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Origin", "https://dash.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := serve(newTestRouter(stubSource{}), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetSummary(t *testing.T) {
	w := serve(newTestRouter(stubSource{records: orders()}), http.MethodGet, "/api/summary")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://dash.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	var got model.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(29)))
	assert.Equal(t, 3, got.OrdersSeen)
	assert.Equal(t, 2, got.PaidOrders)
	assert.Equal(t, []model.ItemQuantity{{Name: "latte", Quantity: 3}, {Name: "tea", Quantity: 1}}, got.TopItems)
	require.Len(t, got.Timeline, 1)
	assert.Equal(t, "1970-01-01", got.Timeline[0].Date)
}

func TestGetSummaryTopParam(t *testing.T) {
	router := newTestRouter(stubSource{records: orders()})

	w := serve(router, http.MethodGet, "/api/summary?top=1")
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.TopItems, 1)
	assert.Len(t, got.ItemsByQuantity, 2)

	w = serve(router, http.MethodGet, "/api/summary?top=-3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "source unavailable", err: fmt.Errorf("%w: iterate: unauthenticated", model.ErrSourceUnavailable), want: http.StatusBadGateway},
		{name: "coercion", err: &model.CoercionError{OrderID: "o-1", Item: 0, Field: "name"}, want: http.StatusUnprocessableEntity},
		{name: "deadline", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{name: "firestore deadline", err: fmt.Errorf("%w: iterate pedidos: %w", model.ErrSourceUnavailable, status.Error(codes.DeadlineExceeded, "context deadline exceeded")), want: http.StatusGatewayTimeout},
		{name: "firestore unavailable", err: fmt.Errorf("%w: iterate pedidos: %w", model.ErrSourceUnavailable, status.Error(codes.Unavailable, "connection refused")), want: http.StatusBadGateway},
		{name: "other", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(stubSource{records: orders(), err: tt.err})
			for _, path := range []string{"/api/summary", "/api/report.pdf", "/api/report.xlsx"} {
				w := serve(router, http.MethodGet, path)
				assert.Equal(t, tt.want, w.Code, path)
			}
		})
	}
}

func TestDownloadPDF(t *testing.T) {
	w := serve(newTestRouter(stubSource{records: orders()}), http.MethodGet, "/api/report.pdf")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, pdfContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sales_report.pdf")
	assert.NotEmpty(t, w.Header().Get("X-Report-Run-Id"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestDownloadWorkbook(t *testing.T) {
	w := serve(newTestRouter(stubSource{records: orders()}), http.MethodGet, "/api/report.xlsx")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestPreflight(t *testing.T) {
	w := serve(newTestRouter(stubSource{}), http.MethodOptions, "/api/summary")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORSAllowlist(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		origins string
		origin  string
		want    string
	}{
		{name: "listed origin", origins: "https://dash.example.com, https://shop.example.com", origin: "https://shop.example.com", want: "https://shop.example.com"},
		{name: "unlisted origin", origins: "https://dash.example.com", origin: "https://evil.example.com", want: ""},
		{name: "empty allowlist", origins: "", origin: "https://evil.example.com", want: "*"},
		{name: "wildcard", origins: "https://dash.example.com,*", origin: "https://evil.example.com", want: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(nil, nil, Options{AllowedOrigins: tt.origins})
			for _, method := range []string{http.MethodGet, http.MethodOptions} {
				req := httptest.NewRequest(method, "/healthz", nil)
				req.Header.Set("Origin", tt.origin)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"), method)
			}
		})
	}
}
