package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-service/internal/usecase"
)

// CacheStatsHandler отдаёт счётчики попаданий/промахов по пространствам кэша.
type CacheStatsHandler struct {
	cacheRepo usecase.CacheRepository
}

func NewCacheStatsHandler(cacheRepo usecase.CacheRepository) *CacheStatsHandler {
	return &CacheStatsHandler{cacheRepo: cacheRepo}
}

// stats
//
//	@Summary	Статистика кэша по пространствам
//	@Produce	json
//	@Success	200	{object}	map[string]usecase.CacheStats
//	@Router		/cache/stats [get]
func (h *CacheStatsHandler) stats(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.cacheRepo.Stats())
}
