package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditViewClause(t *testing.T) {
	tests := []struct {
		name       string
		view       string
		wantClause string
		wantFilter bool
	}{
		{
			name:       "active filters to the recent window",
			view:       "active",
			wantClause: " AND audited_at >= $2",
			wantFilter: true,
		},
		{
			name:       "history filters to older audits",
			view:       "history",
			wantClause: " AND audited_at < $2",
			wantFilter: true,
		},
		{
			name: "all applies no filter",
			view: "all",
		},
		{
			name: "empty applies no filter",
			view: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, ok := auditViewClause(tt.view)
			assert.Equal(t, tt.wantFilter, ok)
			assert.Equal(t, tt.wantClause, clause)
		})
	}
}
