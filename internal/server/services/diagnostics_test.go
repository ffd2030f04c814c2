package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/brewhaven/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	status models.ConnectionStatus
}

func (f fakeProber) Status(ctx context.Context) models.ConnectionStatus { return f.status }

func TestDiagnostics_ConnectedAndWorking(t *testing.T) {
	s := NewDiagnosticsService(fakeProber{status: models.ConnectionStatus{
		Connected: true, OK: true, DatabaseName: "brewhaven", Collections: []string{"account"},
	}}, "mongodb://mongo:27017")

	r := s.Report(context.Background())
	assert.Equal(t, "✅ Running", r.Backend)
	assert.Equal(t, "✅ Connected & Working", r.Database)
	assert.Equal(t, "Connected", r.ConnectionStatus)
	require.NotNil(t, r.DatabaseURL)
	assert.Equal(t, "✅ Set", *r.DatabaseURL)
	require.NotNil(t, r.DatabaseName)
	assert.Equal(t, "brewhaven", *r.DatabaseName)
	assert.Equal(t, []string{"account"}, r.Collections)
}

func TestDiagnostics_StoreErrorIsTruncated(t *testing.T) {
	detail := strings.Repeat("x", 80)
	s := NewDiagnosticsService(fakeProber{status: models.ConnectionStatus{
		Connected: true, OK: false, Detail: detail,
	}}, "")

	r := s.Report(context.Background())
	assert.Equal(t, "⚠️  Connected but Error: "+strings.Repeat("x", 50), r.Database)
	assert.Equal(t, "❌ Not Set", *r.DatabaseURL)
	assert.Equal(t, "✅ Connected", *r.DatabaseName)
	assert.Equal(t, []string{}, r.Collections)
}

func TestDiagnostics_NotInitialized(t *testing.T) {
	s := NewDiagnosticsService(fakeProber{}, "")

	r := s.Report(context.Background())
	assert.Equal(t, "⚠️  Available but not initialized", r.Database)
	assert.Equal(t, "Not Connected", r.ConnectionStatus)
	assert.Nil(t, r.DatabaseURL)
}

func TestDiagnostics_NoProber(t *testing.T) {
	r := NewDiagnosticsService(nil, "").Report(context.Background())
	assert.Equal(t, "❌ Not Available", r.Database)
	assert.Equal(t, []string{}, r.Collections)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "héé", Truncate("hééllo", 3))
	assert.Equal(t, "", Truncate("", 3))
}
