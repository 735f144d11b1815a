// filepath: internal/httpserver/handlers/movie_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"watchlist/internal/logging"
	"watchlist/internal/models"
	"watchlist/internal/services"
	"watchlist/internal/services/auth"
	"watchlist/internal/web"
)

// Index lists all movies.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	movies, err := h.Movies.ListMovies(r.Context())
	if err != nil {
		h.ServerError(w, r, err)
		return
	}
	h.render(w, r, sess, http.StatusOK, web.PageIndex, web.PageData{Movies: movies})
}

// CreateMovie adds a movie from the index form. Anonymous submissions are
// redirected home without touching the store.
func (h *Handlers) CreateMovie(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	if !sess.IsAuthenticated() {
		logging.Log.Debug("CreateMovie: Ignoring anonymous submission")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	in := models.MovieInput{Title: r.PostFormValue("title"), Year: r.PostFormValue("year")}
	movie, err := h.Movies.CreateMovie(r.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			logging.Log.Debugf("CreateMovie: %v", err)
			flashRedirect(w, r, sess, msgInvalidInput, "/")
			return
		}
		h.ServerError(w, r, err)
		return
	}

	h.Auditor.Log(r.Context(), "movie.create", actor(sess), fmt.Sprintf("movie:%d", movie.ID), map[string]interface{}{
		"title": movie.Title,
		"year":  movie.Year,
	})
	flashRedirect(w, r, sess, msgMovieAdded, "/")
}

// EditMovieForm renders the edit form of a movie.
func (h *Handlers) EditMovieForm(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	id, ok := movieID(r)
	if !ok {
		h.NotFound(w, r, sess)
		return
	}

	movie, err := h.Movies.GetMovie(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, sess, err)
		return
	}
	h.render(w, r, sess, http.StatusOK, web.PageEdit, web.PageData{Movie: movie})
}

// UpdateMovie stores the edit form of a movie.
func (h *Handlers) UpdateMovie(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	id, ok := movieID(r)
	if !ok {
		h.NotFound(w, r, sess)
		return
	}

	in := models.MovieInput{Title: r.PostFormValue("title"), Year: r.PostFormValue("year")}
	movie, err := h.Movies.UpdateMovie(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			logging.Log.Debugf("UpdateMovie: %v", err)
			flashRedirect(w, r, sess, msgInvalidInput, fmt.Sprintf("/movie/edit/%d", id))
			return
		}
		h.handleServiceError(w, r, sess, err)
		return
	}

	h.Auditor.Log(r.Context(), "movie.update", actor(sess), fmt.Sprintf("movie:%d", movie.ID), map[string]interface{}{
		"title": movie.Title,
		"year":  movie.Year,
	})
	flashRedirect(w, r, sess, msgMovieUpdated, "/")
}

// DeleteMovie removes a movie.
func (h *Handlers) DeleteMovie(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	id, ok := movieID(r)
	if !ok {
		h.NotFound(w, r, sess)
		return
	}

	if err := h.Movies.DeleteMovie(r.Context(), id); err != nil {
		h.handleServiceError(w, r, sess, err)
		return
	}

	h.Auditor.Log(r.Context(), "movie.delete", actor(sess), fmt.Sprintf("movie:%d", id), nil)
	flashRedirect(w, r, sess, msgMovieDeleted, "/")
}
