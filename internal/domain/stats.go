package domain

// GroupStat is one row of a grouped aggregation: the distinct value of the
// grouped field, how many records carry it, and (when a sum field was
// requested) the arithmetic total of that field across the group.
type GroupStat struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
	Sum   int64  `json:"sum,omitempty"`
}

type StatusStat struct {
	Count  int64 `json:"count"`
	Amount int64 `json:"amount,omitempty"`
}

type EntityStats struct {
	Total    int64                 `json:"total"`
	Today    int64                 `json:"today"`
	Statuses map[string]StatusStat `json:"statuses"`
}

// StatsSnapshot is the cross-entity statistics view served by GET /stats.
type StatsSnapshot struct {
	Registrations EntityStats `json:"registrations"`
	Payments      EntityStats `json:"payments"`
	TotalAmount   int64       `json:"total_amount"`
}
