package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/beanmap/beanmap/internal/db"
	"github.com/beanmap/beanmap/internal/repository"
	"github.com/beanmap/beanmap/internal/service"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	auth  *service.AuthService
	cafes *service.CafeService
	users repository.UserRepository
	mux   *http.ServeMux
}

// newHarness wires handlers over a fresh in-memory database. CSRF and rate
// limiting are covered by their own middleware tests and stay out of the way
// here.
func newHarness(t *testing.T) *harness {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	t.Cleanup(func() {
		database.Close()
	})

	users := repository.NewUserRepository(database)
	cafeRepo := repository.NewCafeRepository(database)

	authService := service.NewAuthService(users, "test-secret", time.Hour, false)
	cafeService := service.NewCafeService(cafeRepo)
	contentService := service.NewContentService(t.TempDir())

	home := NewHomeHandler(contentService)
	auth := NewAuthHandler(authService)
	cafe := NewCafeHandler(cafeService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /places", cafe.PlacesPage)
	mux.HandleFunc("GET /cafe/{id}", cafe.CafePage)
	mux.HandleFunc("GET /add_cafe", cafe.AddCafePage)
	mux.HandleFunc("POST /add_cafe", cafe.AddCafe)
	mux.HandleFunc("GET /join", auth.JoinPage)
	mux.HandleFunc("POST /join", auth.Join)
	mux.HandleFunc("GET /register", auth.RegisterPage)
	mux.HandleFunc("POST /register", auth.Register)
	mux.HandleFunc("GET /logout", auth.Logout)

	return &harness{
		auth:  authService,
		cafes: cafeService,
		users: users,
		mux:   mux,
	}
}

func (h *harness) get(path string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	h.mux.ServeHTTP(w, r)
	return w
}

func (h *harness) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.mux.ServeHTTP(w, r)
	return w
}

func cafeForm2(name string) url.Values {
	return url.Values{
		"name":     {name},
		"map_url":  {"https://maps.example.com/" + name},
		"img_url":  {"https://img.example.com/" + name + ".jpg"},
		"location": {"Shoreditch"},
		"seats":    {"20-30"},
		"has_wifi": {"on"},
	}
}

func TestHomePage(t *testing.T) {
	h := newHarness(t)

	w := h.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Find a place to work")
}

func TestRegisterLogsUserIn(t *testing.T) {
	h := newHarness(t)

	w := h.postForm("/register", url.Values{
		"name":     {"Ann"},
		"email":    {"ann@x.com"},
		"password": {"correct horse battery"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	require.NotNil(t, session, "registration must establish a session")
	assert.NotEmpty(t, session.Value)
	assert.True(t, session.HttpOnly)
}

func TestRegisterExistingEmailRedirectsToJoin(t *testing.T) {
	h := newHarness(t)

	_, err := h.auth.Register("Ann", "ann@x.com", "correct horse battery")
	require.NoError(t, err)

	w := h.postForm("/register", url.Values{
		"name":     {"Imposter"},
		"email":    {"ann@x.com"},
		"password": {"another password"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/join?notice=exists", w.Header().Get("Location"))
}

func TestRegisterInvalidInputRedisplaysForm(t *testing.T) {
	h := newHarness(t)

	w := h.postForm("/register", url.Values{
		"name":     {"Ann"},
		"email":    {"not-an-email"},
		"password": {"correct horse battery"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email address format")
}

func TestJoinSuccess(t *testing.T) {
	h := newHarness(t)

	_, err := h.auth.Register("Ann", "ann@x.com", "correct horse battery")
	require.NoError(t, err)

	w := h.postForm("/join", url.Values{
		"email":    {"ann@x.com"},
		"password": {"correct horse battery"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestJoinWrongPassword(t *testing.T) {
	h := newHarness(t)

	_, err := h.auth.Register("Ann", "ann@x.com", "correct horse battery")
	require.NoError(t, err)

	w := h.postForm("/join", url.Values{
		"email":    {"ann@x.com"},
		"password": {"wrong password!!"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Credentials incorrect")

	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, "session", c.Name, "failed login must not set a session")
	}
}

func TestJoinUnknownEmailRedirectsToRegister(t *testing.T) {
	h := newHarness(t)

	w := h.postForm("/join", url.Values{
		"email":    {"nobody@x.com"},
		"password": {"whatever password"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register?notice=unknown", w.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	h := newHarness(t)

	w := h.get("/logout")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.Empty(t, session.Value)
}

func TestAddCafeAndList(t *testing.T) {
	h := newHarness(t)

	w := h.postForm("/add_cafe", cafeForm2("Prufrock"))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/places", w.Header().Get("Location"))

	w = h.get("/places")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Prufrock")
	assert.Contains(t, w.Body.String(), "All cafés (1)")
}

func TestAddCafeMissingNameRedisplaysForm(t *testing.T) {
	h := newHarness(t)

	form := cafeForm2("X")
	form.Set("name", "")
	w := h.postForm("/add_cafe", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")

	// Submitted values echoed back
	assert.Contains(t, w.Body.String(), "Shoreditch")

	all, err := h.cafes.Cafes()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAddCafeDuplicateName(t *testing.T) {
	h := newHarness(t)

	w := h.postForm("/add_cafe", cafeForm2("Prufrock"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = h.postForm("/add_cafe", cafeForm2("Prufrock"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestCafePage(t *testing.T) {
	h := newHarness(t)

	cafe, err := h.cafes.Add(service.CafeInput{
		Name:     "Prufrock",
		MapURL:   "https://maps.example.com/prufrock",
		ImgURL:   "https://img.example.com/prufrock.jpg",
		Location: "Shoreditch",
		Seats:    "20-30",
		HasWifi:  true,
	})
	require.NoError(t, err)

	w := h.get("/cafe/" + strconv.FormatInt(cafe.ID, 10))
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Prufrock")
	assert.Contains(t, body, "has_wifi")
	assert.Contains(t, body, "20-30")
}

func TestCafePageNotFound(t *testing.T) {
	h := newHarness(t)

	w := h.get("/cafe/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.get("/cafe/not-a-number")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
