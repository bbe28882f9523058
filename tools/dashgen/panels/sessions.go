package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ActiveSessions returns a stat panel showing the live session count.
func ActiveSessions() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Active Sessions").
		Description("Authenticated sessions seen by the last refresh sweep").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`yte_sessions_active{job="trade-engine"}`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// TokenRefreshRate returns a timeseries panel showing token refresh
// attempts per second split by result.
func TokenRefreshRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Token Refreshes").
		Description("User token refresh attempts per second, by result").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (result) (rate(yte_token_refreshes_total{job="trade-engine"}[5m]))`,
			"{{result}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SessionsExpired returns a stat panel showing sessions pruned in the
// past 24 hours.
func SessionsExpired() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Expired (24h)").
		Description("Sessions removed after token expiry in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`increase(yte_sessions_expired_total{job="trade-engine"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
