package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"

	"github.com/matst80/slask-view/pkg/common"
	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/messaging"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/matst80/slask-view/pkg/urlstate"
	"github.com/matst80/slask-view/pkg/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	fetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskview_fetch_errors_total",
		Help: "The total number of failed catalog fetches",
	})
	noViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskview_views_total",
		Help: "The total number of rendered views",
	})
	totalRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskview_records",
		Help: "The number of records in the catalog",
	})
)

// ApiPrefix is where Handler mounts the api. Links and view URLs include it.
const ApiPrefix = "/api"

type WebServer struct {
	Catalog  *Catalog
	Tracking types.Tracking
	Log      logger.Logger
	PageSize int
	Columns  []view.Column
	// CategoryField names the record field categories are read from.
	CategoryField string
	Country       string
}

type ProductsResponse struct {
	view.ViewModel
	Columns []view.Column `json:"columns"`
	Links   Links         `json:"links"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type ReloadResponse struct {
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

func (ws *WebServer) View(w http.ResponseWriter, r *http.Request, sessionId string) error {
	q := types.ViewQueryFromValues(r.URL.Query())

	loc, err := urlstate.NewLocation(ApiPrefix+r.URL.RequestURI(), urlstate.WithReplace())
	if err != nil {
		return common.NewHttpError(http.StatusBadRequest, err)
	}
	o := view.New(loc, view.Options{
		PageSize:      ws.PageSize,
		CategoryField: ws.CategoryField,
		Logger:        ws.Log,
		Tracker:       ws.Tracking,
		SessionId:     sessionId,
	})
	defer o.Close()

	records, loading := ws.Catalog.Records()
	if !loading {
		o.SetRecords(records)
	}
	model := o.View()
	if loading {
		model.Loading = true
		model.Category = q.Category
		model.Sort = q.SortState()
		if categories := ws.Catalog.Categories(); categories != nil {
			model.Categories = categories
		}
	} else {
		q = types.ViewQuery{
			Category: model.Category,
			Page:     model.Pagination.CurrentPage,
		}
		if model.Sort.Active() {
			q.Sort, q.Dir = model.Sort.Key, model.Sort.Direction.String()
		}
	}
	noViews.Inc()

	defaultHeaders(w, r, "10")
	return common.WriteJson(w, http.StatusOK, ProductsResponse{
		ViewModel: model,
		Columns:   ws.Columns,
		Links:     BuildLinks(ApiPrefix+r.URL.Path, q, model.Pagination, view.SortableKeys(ws.Columns), model.Categories),
	})
}

func (ws *WebServer) Categories(w http.ResponseWriter, r *http.Request, sessionId string) error {
	categories := ws.Catalog.Categories()
	if categories == nil {
		categories = []string{}
	}
	defaultHeaders(w, r, "60")
	return common.WriteJson(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

func (ws *WebServer) Reload(w http.ResponseWriter, r *http.Request, sessionId string) error {
	if ws.Catalog.Loading() {
		return common.NewHttpError(http.StatusConflict, errors.New("catalog is already loading"))
	}
	err := ws.Catalog.Reload(r.Context())
	records, _ := ws.Catalog.Records()
	res := ReloadResponse{Records: len(records)}
	status := http.StatusOK
	if err != nil {
		res.Error = err.Error()
		status = http.StatusBadGateway
	}
	return common.WriteJson(w, status, res)
}

// ReloadOnChange returns a catalog change handler that reloads in the
// background. Changes for other countries are ignored.
func (ws *WebServer) ReloadOnChange(ctx context.Context) func(messaging.CatalogChange) error {
	return func(change messaging.CatalogChange) error {
		if change.Country != "" && ws.Country != "" && change.Country != ws.Country {
			return nil
		}
		ws.Log.Info("catalog changed", "reason", change.Reason)
		go ws.Catalog.Reload(ctx)
		return nil
	}
}

func defaultHeaders(w http.ResponseWriter, r *http.Request, cacheTime string) {
	w.Header().Set("Cache-Control", "private, stale-while-revalidate="+cacheTime)
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
}

// ClientHandler serves the view api. It is mounted below /api.
func (ws *WebServer) ClientHandler() http.Handler {
	srv := http.NewServeMux()
	srv.HandleFunc("GET /products", common.JsonHandler(ws.Tracking, ws.Log, ws.View))
	srv.HandleFunc("GET /categories", common.JsonHandler(ws.Tracking, ws.Log, ws.Categories))
	srv.HandleFunc("POST /reload", common.JsonHandler(ws.Tracking, ws.Log, ws.Reload))
	srv.HandleFunc("OPTIONS /", common.RespondToOptions)
	return common.Recover(ws.Log, srv)
}

// Handler mounts the api and the health check.
func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", ws.Health)
	mux.Handle(ApiPrefix+"/", http.StripPrefix(ApiPrefix, ws.ClientHandler()))
	return mux
}

func (ws *WebServer) Health(w http.ResponseWriter, r *http.Request) {
	if !ws.Catalog.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// DebugHandler serves health, metrics and optionally pprof.
func (ws *WebServer) DebugHandler(profiling bool) http.Handler {
	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", ws.Health)
	debugMux.Handle("/metrics", promhttp.Handler())
	if profiling {
		ws.Log.Info("profiling enabled")
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return debugMux
}
