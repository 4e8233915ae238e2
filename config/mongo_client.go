package config

import (
	"context"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// PoolStats tracks connection pool activity via the driver's PoolMonitor.
type PoolStats struct {
	CheckedOut  int64
	Created     int64
	Closed      int64
	LastChecked time.Time
}

var poolStats PoolStats

func GetPoolStats() PoolStats {
	return PoolStats{
		CheckedOut:  atomic.LoadInt64(&poolStats.CheckedOut),
		Created:     atomic.LoadInt64(&poolStats.Created),
		Closed:      atomic.LoadInt64(&poolStats.Closed),
		LastChecked: time.Now(),
	}
}

func poolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.GetSucceeded:
				atomic.AddInt64(&poolStats.CheckedOut, 1)
			case event.ConnectionReturned:
				atomic.AddInt64(&poolStats.CheckedOut, -1)
			case event.ConnectionCreated:
				atomic.AddInt64(&poolStats.Created, 1)
			case event.ConnectionClosed:
				atomic.AddInt64(&poolStats.Closed, 1)
			}
		},
	}
}

// ConnectMongo establishes the MongoDB connection used for the whole process
// lifetime. The caller owns the client and must Disconnect it on shutdown.
func ConnectMongo(ctx context.Context, cfg DatabaseConfig) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(cfg.RetryWrites).
		SetPoolMonitor(poolMonitor())

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}
