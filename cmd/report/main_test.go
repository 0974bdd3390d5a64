package main

import (
	"testing"

	"github.com/papudim/sales-report/internal/platform/config"
	"github.com/stretchr/testify/assert"
)

func TestApplyFlags(t *testing.T) {
	defer func() { outDir, topN, title = "", 0, "" }()

	cfg := config.Config{OutputDir: ".", ReportTopItems: 5, ReportTitle: "Sales Report"}
	applyFlags(&cfg)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 5, cfg.ReportTopItems)
	assert.Equal(t, "Sales Report", cfg.ReportTitle)

	outDir, topN, title = "/tmp/reports", 3, "Relatório de Vendas"
	applyFlags(&cfg)
	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.Equal(t, 3, cfg.ReportTopItems)
	assert.Equal(t, "Relatório de Vendas", cfg.ReportTitle)
}
