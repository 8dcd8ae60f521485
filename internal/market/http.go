package market

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"MarketStore/pkg/kit"
)

type Server struct {
	Service *Service
	Log     *zap.Logger

	// WriteLimiter, when set, rate-limits the mutation routes per IP.
	WriteLimiter *kit.IPRateLimiter

	validate *validator.Validate
}

func NewServer(svc *Service, log *zap.Logger) *Server {
	return &Server{
		Service:  svc,
		Log:      log,
		validate: validator.New(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Service.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/products", s.listProducts)
	r.Get("/products/{id}", s.getProduct)
	r.Get("/sellers", s.listSellers)
	r.Get("/sellers/{id}", s.getSeller)
	r.Get("/stats", s.stats)

	r.Group(func(wr chi.Router) {
		if s.WriteLimiter != nil {
			wr.Use(s.WriteLimiter.Middleware)
		}
		wr.Post("/products", s.createProduct)
		wr.Put("/products/{id}", s.updateProduct)
		wr.Delete("/products/{id}", s.deleteProduct)
		wr.Post("/products/{id}/view", s.recordView)
		wr.Post("/sellers", s.createSeller)
		wr.Put("/sellers/{id}", s.updateSeller)
		wr.Delete("/sellers/{id}", s.deleteSeller)
	})

	return r
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	page, err := s.Service.ListProducts(r.Context(), parseListProductsQuery(r))
	if err != nil {
		s.writeServiceError(w, r, err, "list products")
		return
	}
	kit.WriteJSON(w, http.StatusOK, page)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.Service.GetProduct(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "get product")
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) listSellers(w http.ResponseWriter, r *http.Request) {
	page, err := s.Service.ListSellers(r.Context(), parseListSellersQuery(r))
	if err != nil {
		s.writeServiceError(w, r, err, "list sellers")
		return
	}
	kit.WriteJSON(w, http.StatusOK, page)
}

func (s *Server) getSeller(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := s.Service.GetSeller(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "get seller")
		return
	}
	kit.WriteJSON(w, http.StatusOK, d)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	st, err := s.Service.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "stats")
		return
	}
	kit.WriteJSON(w, http.StatusOK, st)
}

func parseListProductsQuery(r *http.Request) ListProductsQuery {
	qs := r.URL.Query()

	q := ListProductsQuery{
		Search:     qs.Get("search"),
		Category:   qs.Get("category"),
		Condition:  qs.Get("condition"),
		MinPrice:   qs.Get("minPrice"),
		MaxPrice:   qs.Get("maxPrice"),
		SellerID:   qs.Get("sellerId"),
		SellerType: qs.Get("sellerType"),

		VerifiedOnly: qs.Get("verifiedOnly") == "true",

		// orphans stay visible by default (seller comes back null);
		// includeOrphans=false drops them instead.
		IncludeOrphans: qs.Get("includeOrphans") != "false",

		SortBy:    qs.Get("sortBy"),
		SortOrder: qs.Get("sortOrder"),
	}

	q.Page = atoiOrDefault(qs.Get("page"), defaultPage)
	q.Limit = atoiOrDefault(qs.Get("limit"), defaultLimit)
	return q
}

func parseListSellersQuery(r *http.Request) ListSellersQuery {
	qs := r.URL.Query()

	q := ListSellersQuery{
		Search: qs.Get("search"),
		Type:   qs.Get("type"),
	}

	if v := qs.Get("verified"); v == "true" || v == "false" {
		b := v == "true"
		q.Verified = &b
	}

	q.Page = atoiOrDefault(qs.Get("page"), defaultPage)
	q.Limit = atoiOrDefault(qs.Get("limit"), defaultLimit)
	return q
}

func atoiOrDefault(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	if errors.Is(err, ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", nil)
		return
	}

	if s.Log != nil {
		s.Log.Error(op+" failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
