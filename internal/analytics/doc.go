// Package analytics computes the dashboard summaries: KPI bundles, value
// frequencies, crosstabs, time series, histograms and the filter option
// surface. Every function is a pure transformation over an immutable
// dataset; zero-length input yields zero or empty defaults, never an error.
package analytics
