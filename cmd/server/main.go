package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"github.com/cupnomics/breakeven/internal/breakeven"
	"github.com/cupnomics/breakeven/internal/config"
	"github.com/cupnomics/breakeven/internal/permalink"
	"github.com/cupnomics/breakeven/internal/store"
)

// Sessions are working state for the current sitting only; anything idle
// longer than this is swept.
const (
	sessionIdleTTL     = 24 * time.Hour
	sessionSweepPeriod = time.Hour
)

type server struct {
	store    *store.Store
	sessions *sessionService
	currency string
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type caseFormData struct {
	ID     string
	Input  breakeven.ScenarioInput
	Active bool
}

type caseKPI struct {
	ID          string
	Revenue     string
	GrossProfit string
	FixedCost   string
	NetProfit   string
	BreakEven   string
	Payback     string
}

type activeDetail struct {
	ID           string
	CupsPerDay   string
	DaysOpen     int
	Contribution string
	BreakEven    string
	Payback      string
	Depreciation string
	GrossMargin  string
	NetMargin    string
	ROI          string
}

type dashboardViewData struct {
	baseViewData
	Currency  string
	Cases     []caseFormData
	KPIs      []caseKPI
	Detail    activeDetail
	Insights  []breakeven.Insight
	Permalink string
}

func main() {
	cfg := config.Load()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer st.Close()

	if cfg.IsDev() {
		if err := st.Migrate(); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	srv := &server{
		store:    st,
		sessions: newSessionService(cfg.SessionSecret),
		currency: cfg.Currency,
	}

	go srv.sweepSessions()

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Get("/", s.handleDashboard)
	r.Post("/cases/{id}", s.handleCaseUpdate)
	r.Post("/cases/{id}/copy", s.handleCaseCopy)
	r.Post("/active", s.handleActiveSelect)
	r.Get("/api/metrics", s.handleAPIMetrics)
	r.Get("/api/cases/{id}/metrics", s.handleAPICaseMetrics)
	r.Get("/api/cases/{id}/charts/waterfall", s.handleAPIWaterfall)
	r.Get("/api/cases/{id}/charts/fixed-costs", s.handleAPIFixedCosts)
	r.Get("/api/cases/{id}/charts/sensitivity", s.handleAPISensitivity)
	r.Get("/healthz", s.handleHealth)
	return r
}

// sweepSessions periodically drops session rows idle past their TTL.
func (s *server) sweepSessions() {
	ticker := time.NewTicker(sessionSweepPeriod)
	defer ticker.Stop()
	for range ticker.C {
		removed, err := s.store.DeleteIdle(sessionIdleTTL)
		if err != nil {
			log.Printf("sweep idle sessions: %v", err)
			continue
		}
		if removed > 0 {
			log.Printf("swept %d idle sessions", removed)
		}
	}
}

// loadState resolves the working case set for this request. Precedence: an
// explicit permalink in the URL beats stored session state, which beats the
// defaults.
func (s *server) loadState(w http.ResponseWriter, r *http.Request) (string, breakeven.CaseSet, breakeven.CaseID) {
	sid := s.sessions.ensure(w, r)

	query := r.URL.Query()
	if queryHasScenario(query) {
		decoded, active := permalink.Decode(query)
		cases := breakeven.DefaultCaseSet()
		for id, in := range decoded {
			cases[id] = in
		}
		if err := s.store.SaveSession(sid, cases, active); err != nil {
			log.Printf("save session from permalink: %v", err)
		}
		return sid, cases, active
	}

	cases, active, err := s.store.LoadSession(sid)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			log.Printf("load session: %v", err)
		}
		return sid, breakeven.DefaultCaseSet(), breakeven.CaseA
	}
	return sid, cases, active
}

func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	_, cases, active := s.loadState(w, r)

	data := dashboardViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Currency:  s.currency,
		Permalink: "/?" + permalink.Encode(cases, active).Encode(),
	}

	for _, id := range breakeven.CaseIDs {
		in := cases[id]
		m := breakeven.Calculate(in)
		data.Cases = append(data.Cases, caseFormData{
			ID:     string(id),
			Input:  in,
			Active: id == active,
		})
		data.KPIs = append(data.KPIs, caseKPI{
			ID:          string(id),
			Revenue:     s.money(m.Revenue),
			GrossProfit: s.money(m.GrossProfit),
			FixedCost:   s.money(m.FixedCostTotal),
			NetProfit:   s.money(m.NetProfit),
			BreakEven:   breakEvenCups(m.BreakEvenCupsPerDay),
			Payback:     m.PaybackMonths.String(),
		})
	}

	detail := breakeven.Calculate(cases[active])
	data.Detail = activeDetail{
		ID:           string(active),
		CupsPerDay:   humanize.CommafWithDigits(detail.CupsPerDay, 0),
		DaysOpen:     detail.DaysOpenPerMonth,
		Contribution: s.money(detail.ContributionPerCup),
		BreakEven:    breakEvenCups(detail.BreakEvenCupsPerDay),
		Payback:      detail.PaybackMonths.String(),
		Depreciation: s.money(detail.MonthlyDepreciation),
		GrossMargin:  percent(detail.GrossMarginRatio),
		NetMargin:    percent(detail.NetMarginRatio),
		ROI:          percent(detail.AnnualizedROI),
	}
	data.Insights = breakeven.Insights(detail)

	s.renderTemplate(w, "dashboard.html", data)
}

func (s *server) handleCaseUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := breakeven.ValidCaseID(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sid, cases, active := s.loadState(w, r)
	cases[id] = scenarioFromForm(r.PostForm, cases[id])

	if err := s.store.SaveSession(sid, cases, active); err != nil {
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleCaseCopy(w http.ResponseWriter, r *http.Request) {
	from, ok := breakeven.ValidCaseID(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	to, ok := breakeven.ValidCaseID(r.PostForm.Get("to"))
	if !ok {
		http.Error(w, "invalid target case", http.StatusBadRequest)
		return
	}

	sid, cases, active := s.loadState(w, r)
	cases.Copy(from, to)

	if err := s.store.SaveSession(sid, cases, active); err != nil {
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/?success=Case+%s+copied+to+%s", from, to), http.StatusSeeOther)
}

func (s *server) handleActiveSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	active, ok := breakeven.ValidCaseID(r.PostForm.Get("case"))
	if !ok {
		http.Error(w, "invalid case", http.StatusBadRequest)
		return
	}

	sid, cases, _ := s.loadState(w, r)
	if err := s.store.SaveSession(sid, cases, active); err != nil {
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleAPIMetrics(w http.ResponseWriter, r *http.Request) {
	_, cases, _ := s.loadState(w, r)

	out := make(map[breakeven.CaseID]breakeven.Metrics, len(breakeven.CaseIDs))
	for _, id := range breakeven.CaseIDs {
		out[id] = breakeven.Calculate(cases[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleAPICaseMetrics(w http.ResponseWriter, r *http.Request) {
	in, ok := s.caseFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, breakeven.Calculate(in))
}

func (s *server) handleAPIWaterfall(w http.ResponseWriter, r *http.Request) {
	in, ok := s.caseFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, breakeven.WaterfallItems(breakeven.Calculate(in)))
}

func (s *server) handleAPIFixedCosts(w http.ResponseWriter, r *http.Request) {
	in, ok := s.caseFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, breakeven.FixedCostBreakdown(in))
}

func (s *server) handleAPISensitivity(w http.ResponseWriter, r *http.Request) {
	in, ok := s.caseFromRequest(w, r)
	if !ok {
		return
	}
	lo, hi := breakeven.ParseRange(r.URL.Query().Get("range"))
	series := breakeven.SensitivitySeries(in, lo, hi, breakeven.DefaultSensitivityPoints)
	writeJSON(w, http.StatusOK, series)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// caseFromRequest resolves the {id} route parameter against the current
// state, writing a 404 for unknown case ids.
func (s *server) caseFromRequest(w http.ResponseWriter, r *http.Request) (breakeven.ScenarioInput, bool) {
	id, ok := breakeven.ValidCaseID(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return breakeven.ScenarioInput{}, false
	}
	_, cases, _ := s.loadState(w, r)
	return cases[id], true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json response: %v", err)
	}
}

func (s *server) money(v float64) string {
	return s.currency + humanize.CommafWithDigits(v, 0)
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// breakEvenCups renders a break-even volume as whole cups, rounded up:
// serving a fraction of a cup is not a thing.
func breakEvenCups(b breakeven.BreakEven) string {
	v, ok := b.UnitsPerDay()
	if !ok {
		return "-"
	}
	return humanize.Comma(int64(math.Ceil(v)))
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.ParseFiles(
		"web/templates/layout.html",
		"web/templates/"+page,
	)
	if err != nil {
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}
