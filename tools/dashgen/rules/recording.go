package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "yte-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "yte-recording",
					Rules: []Rule{
						{
							Record: "yte:http_requests:rate5m",
							Expr:   `sum(rate(yte_http_requests_total[5m]))`,
						},
						{
							Record: "yte:http_errors:rate5m",
							Expr:   `sum(rate(yte_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "yte:vendor_api_calls:rate5m",
							Expr:   `sum by (vendor) (rate(yte_vendor_api_calls_total[5m]))`,
						},
						{
							Record: "yte:vendor_api_errors:rate5m",
							Expr:   `sum by (vendor) (rate(yte_vendor_api_errors_total[5m]))`,
						},
						{
							Record: "yte:simulation_fallbacks:rate5m",
							Expr:   `sum by (vendor) (rate(yte_simulation_fallbacks_total[5m]))`,
						},
						{
							Record: "yte:token_refresh_failures:rate5m",
							Expr:   `sum(rate(yte_token_refreshes_total{result="failure"}[5m]))`,
						},
					},
				},
			},
		},
	}
}
