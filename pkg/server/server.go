package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/de-tools/posture-report/pkg/models/api"
	fakemiddleware "github.com/de-tools/posture-report/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Fixtures is the state served by the fake CloudGuard API.
type Fixtures struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// Accounts is keyed by platform name (aws, azure, google, kubernetes).
	Accounts map[string][]api.CloudAccount `json:"accounts"`
	Assets   []api.ProtectedAsset          `json:"assets"`
	// Assessments is keyed by cloud account id.
	Assessments map[string][]api.AssessmentResult `json:"assessments"`

	// Non-zero values force the matching endpoint to answer with that status.
	AccountsStatus   int `json:"accountsStatus,omitempty"`
	AssetsStatus     int `json:"assetsStatus,omitempty"`
	AssessmentStatus int `json:"assessmentStatus,omitempty"`
}

// LoadFixtures reads fixtures from a JSON file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixtures
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Fixtures        *Fixtures
	Logger          zerolog.Logger
}

type FakeAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

var listingPlatforms = map[string]string{
	"/CloudAccounts":      "aws",
	"/AzureCloudAccount":  "azure",
	"/GoogleCloudAccount": "google",
	"/kubernetes/account": "kubernetes",
}

// ConfigureRouter mounts the fake endpoints under /v2.
func ConfigureRouter(config Config) *chi.Mux {
	fixtures := config.Fixtures
	if fixtures == nil {
		fixtures = &Fixtures{}
	}
	h := &handler{fixtures: fixtures}

	router := chi.NewRouter()
	router.Use(fakemiddleware.Logger(&config.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/v2", func(r chi.Router) {
		r.Use(h.basicAuth)
		for path, platform := range listingPlatforms {
			r.Get(path, h.listAccounts(platform))
		}
		r.Post("/protected-asset/search", h.searchAssets)
		r.Post("/AssessmentHistoryV2/LastAssessmentResults", h.lastAssessmentResults)
	})

	return router
}

func NewFakeAPI(config Config) *FakeAPI {
	router := ConfigureRouter(config)
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	return &FakeAPI{
		router:          router,
		logger:          &config.Logger,
		shutdownTimeout: config.ShutdownTimeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (f *FakeAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		f.logger.Info().Str("addr", f.server.Addr).Msg("starting fake api")
		serverErrors <- f.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		f.logger.Info().Msg("shutdown initiated")

		ctx, cancel := context.WithTimeout(context.Background(), f.shutdownTimeout)
		defer cancel()

		err := f.server.Shutdown(ctx)
		if err != nil {
			f.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = f.server.Close()
		}
		return err
	}
}

type handler struct {
	fixtures *Fixtures
}

func (h *handler) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(h.fixtures.Username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(h.fixtures.Password)) != 1 {
			writeJSON(r.Context(), w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) listAccounts(platform string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.fixtures.AccountsStatus != 0 {
			writeJSON(r.Context(), w, h.fixtures.AccountsStatus, map[string]string{"message": "forced failure"})
			return
		}
		accounts := h.fixtures.Accounts[platform]
		if accounts == nil {
			accounts = []api.CloudAccount{}
		}
		writeJSON(r.Context(), w, http.StatusOK, accounts)
	}
}

func (h *handler) searchAssets(w http.ResponseWriter, r *http.Request) {
	if h.fixtures.AssetsStatus != 0 {
		writeJSON(r.Context(), w, h.fixtures.AssetsStatus, map[string]string{"message": "forced failure"})
		return
	}

	var req api.AssetSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(r.Context(), w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	var accountID, name string
	for _, f := range req.Filter.Fields {
		switch f.Name {
		case "cloudAccountId":
			accountID = f.Value
		case "name":
			name = f.Value
		}
	}

	assets := []api.ProtectedAsset{}
	for _, a := range h.fixtures.Assets {
		if a.CloudAccountID == accountID && strings.EqualFold(a.Name, name) {
			assets = append(assets, a)
		}
	}

	writeJSON(r.Context(), w, http.StatusCreated, api.AssetSearchResponse{
		Assets:     assets,
		TotalCount: len(assets),
	})
}

func (h *handler) lastAssessmentResults(w http.ResponseWriter, r *http.Request) {
	if h.fixtures.AssessmentStatus != 0 {
		writeJSON(r.Context(), w, h.fixtures.AssessmentStatus, map[string]string{"message": "forced failure"})
		return
	}

	var req api.LastAssessmentResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(r.Context(), w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	results := []api.AssessmentResult{}
	for _, filter := range req.CloudAccountBundleFilters {
		for _, id := range filter.CloudAccountIDs {
			results = append(results, h.fixtures.Assessments[id]...)
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, results)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
