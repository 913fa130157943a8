// Package mcp exposes the KPI and chart pipeline as Model Context Protocol
// tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/service"
)

// New creates an MCP server with all tools registered.
func New(dashboard service.DashboardService, analytics service.AnalyticsService, version string) *server.MCPServer {
	s := server.NewMCPServer("health-trends", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Health Trends server. Compare a patient's health KPIs between the current and previous period, read chart-ready series and list lab analytics. Patients are identified by email, or by clinical history number with lookup=hc."),
	)

	h := &handlers{
		dashboard: dashboard,
		analytics: analytics,
		log:       logger.GetLogger().WithComponent("mcp"),
	}

	s.AddTools(
		server.ServerTool{Tool: toolGetHealthKPIs, Handler: h.getHealthKPIs},
		server.ServerTool{Tool: toolGetChartData, Handler: h.getChartData},
		server.ServerTool{Tool: toolListAnalytics, Handler: h.listAnalytics},
	)

	return s
}

type handlers struct {
	dashboard service.DashboardService
	analytics service.AnalyticsService
	log       *logger.Entry
}
