package services

import (
	"context"

	"github.com/dmitrijs2005/brewhaven/internal/server/models"
)

// maxDetailLength bounds store error text echoed by the diagnostic report.
const maxDetailLength = 50

// StatusProber reports account store connectivity.
type StatusProber interface {
	Status(ctx context.Context) models.ConnectionStatus
}

// DiagnosticReport is the body of the /test route.
type DiagnosticReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// DiagnosticsService summarizes store connectivity. It never fails: store
// problems are folded into the report.
type DiagnosticsService struct {
	prober         StatusProber
	databaseURLSet bool
}

func NewDiagnosticsService(prober StatusProber, databaseURL string) *DiagnosticsService {
	return &DiagnosticsService{prober: prober, databaseURLSet: databaseURL != ""}
}

func (s *DiagnosticsService) Report(ctx context.Context) *DiagnosticReport {
	report := &DiagnosticReport{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if s.prober == nil {
		return report
	}

	status := s.prober.Status(ctx)
	if !status.Connected {
		report.Database = "⚠️  Available but not initialized"
		return report
	}

	urlState := "❌ Not Set"
	if s.databaseURLSet {
		urlState = "✅ Set"
	}
	name := status.DatabaseName
	if name == "" {
		name = "✅ Connected"
	}

	report.Database = "✅ Available"
	report.DatabaseURL = &urlState
	report.DatabaseName = &name
	report.ConnectionStatus = "Connected"

	if !status.OK {
		report.Database = "⚠️  Connected but Error: " + Truncate(status.Detail, maxDetailLength)
		return report
	}

	report.Database = "✅ Connected & Working"
	if status.Collections != nil {
		report.Collections = status.Collections
	}
	return report
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
