package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// MockEditorKey returns the cache key for a mock's assembled editor view
func (r *CacheKeyStruct) MockEditorKey(mockID int) string {
	return fmt.Sprintf("mock:%d:editor", mockID)
}

// MockEventsChannel returns the Redis PubSub channel name for a mock's editor events
func (r *CacheKeyStruct) MockEventsChannel(mockID int) string {
	return fmt.Sprintf("mock:%d:events", mockID)
}

var CacheKey = NewCacheKeyStruct()
