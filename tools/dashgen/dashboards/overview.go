// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/yahuti/trade-engine/tools/dashgen/panels"
)

// BuildOverview constructs the YTE Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("YTE Overview").
		Uid("yte-overview").
		Tags([]string{"yte", "trade-engine"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: eBay API.
	b.WithRow(dashboard.NewRowBuilder("eBay API").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()))

	// Row 4: Marketplace.
	b.WithRow(dashboard.NewRowBuilder("Marketplace").
		WithPanel(panels.VendorErrorRate()).
		WithPanel(panels.SimulationFallbackRate()).
		WithPanel(panels.DashboardLatency()).
		WithPanel(panels.DemoFallbacks()))

	// Row 5: Sessions.
	b.WithRow(dashboard.NewRowBuilder("Sessions").
		WithPanel(panels.ActiveSessions()).
		WithPanel(panels.TokenRefreshRate()).
		WithPanel(panels.SessionsExpired()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
