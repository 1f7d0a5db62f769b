// Package analytics tracks query outcomes and user feedback to learn
// how well each query type is being served. Per-(type, urgency) metrics
// converge via exponential moving averages; the Analyze report derives
// advisory tuning recommendations from them. Nothing in this package
// feeds back into triage decisions.
package analytics
