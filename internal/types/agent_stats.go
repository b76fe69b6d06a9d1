package types

// AgentStatSummary is one row of the active-agents aggregation. It is
// computed on demand and never persisted.
type AgentStatSummary struct {
	Agent      string `json:"agent"`
	Listings   int64  `json:"listings"`
	TotalViews int64  `json:"totalViews"`
}
