package report

// Summary is the aggregated KPI block the dashboard renders for one tenant.
type Summary struct {
	CompanyID     string         `json:"company_id"`
	OpenCards     int            `json:"open_cards"`
	ClosedCards   int            `json:"closed_cards"`
	AuditCount    int            `json:"audit_count"`
	AvgAuditScore float64        `json:"avg_audit_score"`
	CardsPerArea  map[string]int `json:"cards_per_area,omitempty"`
}
