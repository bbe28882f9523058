package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// trade engine operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "yte-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "yte-alerts",
					Rules: []Rule{
						{
							Alert: "YteDown",
							Expr:  `absent(up{job="trade-engine"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Trade engine is down",
								"description": "The trade-engine job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "YteReadinessDown",
							Expr:  `yte_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Trade engine readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes. The session store is likely unreachable.",
							},
						},
						{
							Alert: "YteHighErrorRate",
							Expr:  `yte:http_errors:rate5m / yte:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on the trade engine",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "YteSimulationFallbacks",
							Expr:  `sum(yte:simulation_fallbacks:rate5m) > 0.1`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Marketplace data is degrading to simulation",
								"description": "Adapter calls have been falling back to simulated data for more than 10 minutes. A vendor API is likely failing.",
							},
						},
						{
							Alert: "YteEbayQuotaHigh",
							Expr:  `yte_ebay_daily_usage > 4000`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "eBay API daily usage is above 80% of the quota",
								"description": "Daily eBay API usage has exceeded 4000 calls (limit is 5000).",
							},
						},
						{
							Alert: "YteEbayLimitReached",
							Expr:  `increase(yte_ebay_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "eBay API daily limit has been reached",
								"description": "The eBay Browse API daily quota has been exhausted. Live search is degraded until reset.",
							},
						},
						{
							Alert: "YteTokenRefreshFailures",
							Expr:  `yte:token_refresh_failures:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "User token refreshes are failing",
								"description": "One or more eBay user sessions could not be refreshed and will require re-authentication.",
							},
						},
					},
				},
			},
		},
	}
}
