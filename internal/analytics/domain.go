package analytics

// Overview aggregates platform-wide counters for the console dashboard.
type Overview struct {
	Companies             int64 `json:"companies"`
	ActiveCompanies       int64 `json:"active_companies"`
	Users                 int64 `json:"users"`
	ConnectedIntegrations int64 `json:"connected_integrations"`
	MessagesToday         int64 `json:"messages_today"`
}

// SeriesPoint is one bucket in a daily time series.
type SeriesPoint struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}
