package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// FeedQueriesTotal counts social-graph feed selections by feed kind.
	FeedQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loopcraft_feed_queries_total",
		Help: "Total number of feed selection queries by feed kind",
	}, []string{"feed", "entity"})

	// FollowEdgesCreated counts successfully created follow edges.
	FollowEdgesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loopcraft_follow_edges_created_total",
		Help: "Total number of follow edges created",
	})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loopcraft_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loopcraft_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

const queryStartKey = "loopcraft:query_start"

func beforeQuery(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func afterQuery(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// InstrumentDB registers GORM callbacks that feed DatabaseQueryLatency for
// every statement the connection runs.
func InstrumentDB(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("metrics:before_create", beforeQuery); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:after_create", afterQuery("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("metrics:before_query", beforeQuery); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:after_query", afterQuery("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:before_update", beforeQuery); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:after_update", afterQuery("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", beforeQuery); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("metrics:after_delete", afterQuery("delete")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("metrics:before_row", beforeQuery); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("metrics:after_row", afterQuery("row")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("metrics:before_raw", beforeQuery); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("metrics:after_raw", afterQuery("raw"))
}
