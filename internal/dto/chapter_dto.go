package dto

import "bible-study-be/internal/entity"

type ChapterResponse struct {
	Book     string                       `json:"book"`
	Chapter  int                          `json:"chapter"`
	CacheKey string                       `json:"cache_key"`
	Cached   bool                         `json:"cached"`
	Content  *entity.ChapterContentBundle `json:"content"`
}
