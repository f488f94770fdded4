package handler

import (
	"context"
	"net/http"
	"time"

	"financequest/src/model"
)

type userCounter interface {
	Count(ctx context.Context) (int64, error)
}

type gameCounter interface {
	CountAll(ctx context.Context) (total int64, active int64, err error)
}

type cacheStatter interface {
	Stats(ctx context.Context) (*model.CacheStats, error)
}

type providerStats interface {
	Get(ctx context.Context, provider string) (*model.APIStats, error)
}

type exceptionLister interface {
	Recent(ctx context.Context, limit int) ([]model.Exception, error)
}

type clientCounter interface {
	ClientCount() int
}

type quotaReader interface {
	Remaining() int
	Limit() int
	ResetAt() time.Time
}

// MonitoringSources are the read models behind the admin dashboard.
type MonitoringSources struct {
	Users    userCounter
	Games    gameCounter
	Cache    cacheStatter
	Stats    providerStats
	Quota    quotaReader
	Provider string
	// optional
	Exceptions exceptionLister
	Stream     clientCounter
}

const recentExceptions = 10

type quotaView struct {
	Remaining int       `json:"remaining"`
	Limit     int       `json:"limit"`
	ResetAt   time.Time `json:"resetAt"`
}

type monitoring struct {
	Users       int64             `json:"users"`
	GamesTotal  int64             `json:"gamesTotal"`
	GamesActive int64             `json:"gamesActive"`
	Cache       *model.CacheStats `json:"cache"`
	Quota       *quotaView        `json:"quota,omitempty"`
	Provider    *model.APIStats   `json:"provider"`
	Exceptions  []model.Exception `json:"recentExceptions,omitempty"`
	WSClients   int               `json:"wsClients"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// MonitoringHandler answers GET /api/admin/monitoring.
func MonitoringHandler(src MonitoringSources, sink ExceptionSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var (
			out monitoring
			err error
		)

		if out.Users, err = src.Users.Count(ctx); err != nil {
			writeError(w, r, sink, "admin_handler", err)
			return
		}
		if out.GamesTotal, out.GamesActive, err = src.Games.CountAll(ctx); err != nil {
			writeError(w, r, sink, "admin_handler", err)
			return
		}
		if out.Cache, err = src.Cache.Stats(ctx); err != nil {
			writeError(w, r, sink, "admin_handler", err)
			return
		}
		if out.Provider, err = src.Stats.Get(ctx, src.Provider); err != nil {
			writeError(w, r, sink, "admin_handler", err)
			return
		}
		if src.Quota != nil {
			out.Quota = &quotaView{
				Remaining: src.Quota.Remaining(),
				Limit:     src.Quota.Limit(),
				ResetAt:   src.Quota.ResetAt(),
			}
		}
		if src.Exceptions != nil {
			if out.Exceptions, err = src.Exceptions.Recent(ctx, recentExceptions); err != nil {
				writeError(w, r, sink, "admin_handler", err)
				return
			}
		}
		if src.Stream != nil {
			out.WSClients = src.Stream.ClientCount()
		}
		out.GeneratedAt = time.Now().UTC()

		writeJSON(w, http.StatusOK, out)
	}
}
