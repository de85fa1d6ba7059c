package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CatalogKey returns the cache key for the public course catalog listing.
func (r *CacheKeyStruct) CatalogKey() string {
	return "catalog:preview"
}

// CourseKey returns the cache key for a single course's public payload.
func (r *CacheKeyStruct) CourseKey(courseID string) string {
	return fmt.Sprintf("catalog:course:%s", courseID)
}

var CacheKey = NewCacheKeyStruct()
