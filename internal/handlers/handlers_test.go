package handlers

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pickemleague/internal/models"
	"pickemleague/internal/security"
	"pickemleague/internal/service"
	"pickemleague/internal/session"
	"pickemleague/internal/store"
)

// stubSource serves canned schedules so handler tests control results
// without a network.
type stubSource struct {
	schedules map[int]models.Schedule
	current   int
}

func (s *stubSource) FetchSchedule(_ context.Context, week, _ int) models.Schedule {
	schedule, ok := s.schedules[week]
	if !ok {
		return models.Schedule{Week: week}
	}
	return schedule
}

func (s *stubSource) CurrentWeek(context.Context) int {
	if s.current < 1 {
		return 1
	}
	return s.current
}

type testApp struct {
	mux    *http.ServeMux
	store  *store.Store
	source *stubSource
	csrf   *security.CSRFGenerator
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := zap.NewNop().Sugar()

	recordStore, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)

	source := &stubSource{
		current: 3,
		schedules: map[int]models.Schedule{
			3: {Week: 3, Games: []models.Game{
				{
					ID:      "100",
					Kickoff: time.Now().UTC().Add(time.Hour),
					Home:    models.Team{ID: "1", Name: "Kansas City Chiefs"},
					Away:    models.Team{ID: "2", Name: "Buffalo Bills"},
				},
				{
					ID:      "200",
					Kickoff: time.Now().UTC().Add(-time.Hour),
					Home:    models.Team{ID: "3", Name: "Dallas Cowboys"},
					Away:    models.Team{ID: "4", Name: "Philadelphia Eagles"},
				},
			}},
		},
	}

	sessions := session.NewStore(time.Hour)
	authService := service.NewAuthService(recordStore, sessions, logger)
	pickService := service.NewPickService(recordStore, source, logger)
	scoreService := service.NewScoreService(recordStore, source, logger)

	templates := template.Must(template.New("login.tmpl").Parse(`login page {{.Error}}`))
	template.Must(templates.New("week.tmpl").Parse(`week {{.Week}} games {{len .Games}} saved {{.Saved}} blocked {{.Blocked}}`))
	template.Must(templates.New("scoreboard.tmpl").Parse(`scoreboard for {{.Report.Detail.Player}}`))

	limiter := security.NewRateLimiter(100, time.Minute)
	csrf := security.NewCSRFGenerator("test-secret")
	middleware := NewMiddleware(authService, limiter, csrf, logger)
	authHandler := NewAuthHandler(authService, source, templates, logger)
	pickHandler := NewPickHandler(pickService, csrf, templates, logger)
	scoreboardHandler := NewScoreboardHandler(scoreService, templates, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", authHandler.Home)
	mux.HandleFunc("POST /check-user", authHandler.CheckUser)
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /logout", authHandler.Logout)
	mux.HandleFunc("GET /week/{week}", middleware.RequireAuth(pickHandler.ShowWeek))
	mux.HandleFunc("POST /week/{week}", middleware.RequireAuth(middleware.CSRFProtect(pickHandler.SubmitWeek)))
	mux.HandleFunc("GET /scoreboard", middleware.RequireAuth(scoreboardHandler.ShowScoreboard))

	return &testApp{mux: mux, store: recordStore, source: source, csrf: csrf}
}

func (app *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.mux.ServeHTTP(rec, req)
	return rec
}

// login posts the login form and returns the session cookie.
func (app *testApp) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := app.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}
