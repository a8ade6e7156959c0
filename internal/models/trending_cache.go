package models

import (
	"time"
)

// TrendingCache is one client-side cache row for region scoped trending
// lookups, keyed as trending_music_{region}. Data holds a JSON array of
// VideoRef. Staleness is judged against UpdatedAt.
type TrendingCache struct {
	CacheKey  string    `gorm:"primaryKey;type:varchar(64)" json:"cache_key"`
	Data      []byte    `gorm:"type:jsonb" json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}
