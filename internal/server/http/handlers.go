package internalhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/kiruthikag2611/Planify/internal/app"
	"github.com/kiruthikag2611/Planify/internal/auth"
	"github.com/kiruthikag2611/Planify/internal/layout"
	"github.com/kiruthikag2611/Planify/internal/questionnaire"
	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/kiruthikag2611/Planify/internal/util"
)

const maxBodySize = 1 << 20

var errBadRequest = errors.New("bad request")

type route struct {
	method  string
	pattern string
	handler runtime.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{http.MethodGet, "/health", s.health},

		{http.MethodPost, "/v1/login", s.login},
		{http.MethodPost, "/v1/logout", s.logout},
		{http.MethodGet, "/v1/profile", s.profile},

		{http.MethodGet, "/v1/questionnaire", s.questionnaireState},
		{http.MethodDelete, "/v1/questionnaire", s.resetQuestionnaire},
		{http.MethodGet, "/v1/questionnaire/categories", s.categories},
		{http.MethodGet, "/v1/questionnaire/categories/{category}", s.subCategories},
		{http.MethodGet, "/v1/questionnaire/categories/{category}/{subCategory}", s.questions},
		{http.MethodPost, "/v1/questionnaire/categories/{category}/{subCategory}", s.selectQuestionnaire},
		{http.MethodPut, "/v1/questionnaire/answers/{question}", s.answer},

		{http.MethodPost, "/v1/schedule/generate", s.generate},
		{http.MethodGet, "/v1/schedule", s.pendingSchedule},
		{http.MethodGet, "/v1/schedule/layout", s.pendingLayout},
		{http.MethodPost, "/v1/schedule/save", s.saveSchedule},

		{http.MethodGet, "/v1/events", s.listEvents},
		{http.MethodPost, "/v1/events", s.createEvent},
		{http.MethodGet, "/v1/events/{id}", s.getEvent},
		{http.MethodPut, "/v1/events/{id}", s.updateEvent},
		{http.MethodDelete, "/v1/events/{id}", s.removeEvent},
		{http.MethodGet, "/v1/stream/events", s.streamEvents},

		{http.MethodGet, "/v1/calendar/day/{date}", s.dayLayout},
		{http.MethodGet, "/v1/calendar/week/{date}", s.weekLayout},
		{http.MethodGet, "/v1/calendar/month/{month}", s.monthOverview},
		{http.MethodGet, "/v1/calendar/ics", s.exportICS},
		{http.MethodPost, "/v1/calendar/ics", s.importICS},
	}
}

func user(r *http.Request) auth.User {
	u, _ := auth.FromContext(r.Context())
	return u
}

func decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) date(value string) (time.Time, error) {
	d, err := util.ParseDate(value, s.app.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", value, storage.ErrIncorrectEventDate)
	}
	return d, nil
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	p, err := s.app.Login(r.Context(), user(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	s.app.Logout(user(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	p, err := s.app.Profile(r.Context(), user(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type questionnaireResponse struct {
	questionnaire.State
	Questions []questionnaire.Question `json:"questions"`
	Missing   []string                 `json:"missing"`
}

func newQuestionnaireResponse(st questionnaire.State) questionnaireResponse {
	qs, _ := questionnaire.Questions(st.Category, st.SubCategory)
	if qs == nil {
		qs = []questionnaire.Question{}
	}
	missing := st.Missing()
	if missing == nil {
		missing = []string{}
	}
	return questionnaireResponse{State: st, Questions: qs, Missing: missing}
}

func (s *Server) questionnaireState(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, newQuestionnaireResponse(s.app.Questionnaire(user(r))))
}

func (s *Server) resetQuestionnaire(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	s.app.ResetQuestionnaire(user(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) categories(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, map[string][]string{"categories": questionnaire.Categories()})
}

func (s *Server) subCategories(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	subs, err := questionnaire.SubCategories(params["category"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"subCategories": subs})
}

func (s *Server) questions(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	qs, err := questionnaire.Questions(params["category"], params["subCategory"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]questionnaire.Question{"questions": qs})
}

func (s *Server) selectQuestionnaire(w http.ResponseWriter, r *http.Request, params map[string]string) {
	st, err := s.app.SelectQuestionnaire(user(r), params["category"], params["subCategory"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuestionnaireResponse(st))
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var body struct {
		Value string `json:"value"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	st, err := s.app.AnswerQuestion(user(r), params["question"], body.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuestionnaireResponse(st))
}

// generate accepts formatted answers in the body; an empty body uses the
// caller's questionnaire.
func (s *Server) generate(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var answers map[string]string
	if err := decode(r, &answers); err != nil {
		writeError(w, err)
		return
	}
	sched, err := s.app.CreateSchedule(r.Context(), user(r), answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sched)
}

func (s *Server) pendingSchedule(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	sched, err := s.app.PendingSchedule(r.Context(), user(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

type pendingLayoutResponse struct {
	Week    layout.Week `json:"week"`
	Summary string      `json:"summary"`
}

func (s *Server) pendingLayout(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	week, sched, err := s.app.PendingLayout(r.Context(), user(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pendingLayoutResponse{Week: week, Summary: sched.Summary})
}

func (s *Server) saveSchedule(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var body struct {
		Weeks  int    `json:"weeks"`
		WeekOf string `json:"weekOf"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	opts := app.SaveOptions{Weeks: body.Weeks}
	if body.WeekOf != "" {
		d, err := s.date(body.WeekOf)
		if err != nil {
			writeError(w, err)
			return
		}
		opts.WeekOf = d
	}
	res, err := s.app.SaveSchedule(r.Context(), user(r), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func filterFrom(r *http.Request) storage.Filter {
	q := r.URL.Query()
	return storage.Filter{Date: q.Get("date"), From: q.Get("from"), To: q.Get("to")}
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	events, err := s.app.ListEvents(r.Context(), user(r), filterFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]storage.Event{"events": events})
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var in app.EventInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	e, err := s.app.CreateEvent(r.Context(), user(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request, params map[string]string) {
	e, err := s.app.GetEvent(r.Context(), user(r), params["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var in app.EventInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	e, err := s.app.UpdateEvent(r.Context(), user(r), params["id"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) removeEvent(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if err := s.app.RemoveEvent(r.Context(), user(r), params["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dayLayout(w http.ResponseWriter, r *http.Request, params map[string]string) {
	d, err := s.date(params["date"])
	if err != nil {
		writeError(w, err)
		return
	}
	day, err := s.app.DayLayout(r.Context(), user(r), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) weekLayout(w http.ResponseWriter, r *http.Request, params map[string]string) {
	d, err := s.date(params["date"])
	if err != nil {
		writeError(w, err)
		return
	}
	week, err := s.app.WeekLayout(r.Context(), user(r), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

// monthOverview accepts "2006-01" or any date of the month.
func (s *Server) monthOverview(w http.ResponseWriter, r *http.Request, params map[string]string) {
	value := params["month"]
	if len(value) == len("2006-01") {
		value += "-01"
	}
	d, err := s.date(value)
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := s.app.MonthOverview(r.Context(), user(r), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) exportICS(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	cal, err := s.app.ExportICS(r.Context(), user(r))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="planify.ics"`)
	_, _ = io.WriteString(w, cal)
}

func (s *Server) importICS(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	res, err := s.app.ImportICS(r.Context(), user(r), io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
