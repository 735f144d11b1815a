package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"watchlist/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, page string, data PageData) *httptest.ResponseRecorder {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r.Render(rr, http.StatusOK, page, data)
	return rr
}

func TestRender_IndexAnonymous(t *testing.T) {
	rr := render(t, PageIndex, PageData{
		OwnerName: "Test",
		Movies:    []models.Movie{{ID: 1, Title: "Test Movie Title", Year: "2019"}},
	})

	body := rr.Body.String()
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, body, "Test's Watchlist")
	assert.Contains(t, body, "Test Movie Title - 2019")
	for _, absent := range []string{"Logout", "Settings", `<form method="post">`, "Delete", "Edit"} {
		assert.NotContains(t, body, absent)
	}
}

func TestRender_IndexAuthenticated(t *testing.T) {
	rr := render(t, PageIndex, PageData{
		OwnerName:     "Test",
		Authenticated: true,
		Flashes:       []string{"Login success."},
		Movies:        []models.Movie{{ID: 7, Title: "WALL-E", Year: "2008"}},
	})

	body := rr.Body.String()
	for _, present := range []string{"Login success.", "Logout", "Settings", `<form method="post">`, "Delete", "Edit", "/movie/edit/7", "/movie/delete/7"} {
		assert.Contains(t, body, present)
	}
}

func TestRender_EscapesUserContent(t *testing.T) {
	rr := render(t, PageIndex, PageData{
		OwnerName: "<b>x</b>",
		Movies:    []models.Movie{{ID: 1, Title: "<script>alert(1)</script>", Year: "2019"}},
	})

	body := rr.Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.NotContains(t, body, "<b>x</b>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRender_Pages(t *testing.T) {
	tests := []struct {
		page     string
		data     PageData
		expected []string
	}{
		{PageEdit, PageData{Authenticated: true, Movie: &models.Movie{ID: 1, Title: "Leon", Year: "1994"}}, []string{"Edit item", `value="Leon"`, `value="1994"`}},
		{PageSettings, PageData{Authenticated: true, OwnerName: "Grey Li"}, []string{"Settings", "Your Name", `value="Grey Li"`}},
		{PageLogin, PageData{}, []string{"Login", `name="username"`, `name="password"`}},
		{PageNotFound, PageData{}, []string{"Page Not Found - 404", "Go Back"}},
		{PageError, PageData{}, []string{"Internal Server Error", "Go Back"}},
	}

	for _, tc := range tests {
		t.Run(tc.page, func(t *testing.T) {
			body := render(t, tc.page, tc.data).Body.String()
			for _, s := range tc.expected {
				assert.Contains(t, body, s)
			}
		})
	}
}

func TestRender_UnknownPage(t *testing.T) {
	rr := render(t, "missing.html", PageData{})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAddRoutes_ServesStatic(t *testing.T) {
	router := mux.NewRouter()
	AddRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ".movie-list")
}
