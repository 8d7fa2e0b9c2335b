package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client

// ConnectRedis dials the Redis instance backing the admin report cache.
// Caching is best effort: when the dial or ping fails the engine runs
// without it and every report is recomputed from Mongo on each request,
// so a nil client is returned instead of aborting startup.
func ConnectRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         redisAddr(),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           redisDB(),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
		log.Println("Report caching disabled; admin reports will be computed per request")
		return nil
	}

	log.Println("Connected to Redis")
	RedisClient = client
	return client
}

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func redisDB() int {
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			return db
		}
	}
	return 0
}

// GetRedisClient returns the shared cache client, nil when caching is off
func GetRedisClient() *redis.Client {
	return RedisClient
}

// CloseRedis releases the cache connection pool on shutdown
func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
