package models

import "time"

// Snapshot bundles the five collections fetched from the marketplace
// backend in one page-load-equivalent unit. Aggregations only ever run over
// a complete snapshot; a failed fetch of any collection fails the whole load.
type Snapshot struct {
	Reports      []Report      `json:"reports"`
	BanLearners  []BanRecord   `json:"ban_learners"`
	BanTeachers  []BanRecord   `json:"ban_teachers"`
	Transactions []Transaction `json:"transactions"`
	Users        []User        `json:"users"`
}

// SystemMetrics is a lightweight aggregate exposed for ops tooling.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"avg_request_duration_ms"`
	UpstreamFetches          uint64    `json:"upstream_fetches"`
	AverageUpstreamFetchMs   float64   `json:"avg_upstream_fetch_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
