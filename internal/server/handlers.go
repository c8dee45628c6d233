package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bryan-buckman/redditviewer/internal/apperr"
	"github.com/bryan-buckman/redditviewer/internal/language"
	"github.com/bryan-buckman/redditviewer/internal/model"
	"github.com/bryan-buckman/redditviewer/internal/reddit"
	"github.com/bryan-buckman/redditviewer/internal/translate"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"store":  s.backend,
	})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, language.All())
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	limit := reddit.DefaultDiscoverLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, r, apperr.BadRequest("limit must be a positive integer"))
			return
		}
		limit = n
	}

	links, err := s.discover.Discover(r.Context(), chi.URLParam(r, "subreddit"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"threads": links})
}

// Thread

func (s *Server) handleGetThread(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.ws.State())
}

func (s *Server) handleClearThread(w http.ResponseWriter, r *http.Request) {
	s.ws.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.writeError(w, r, apperr.InvalidURL())
		return
	}

	st, err := s.ws.Fetch(r.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, apperr.BadRequest("No file uploaded"))
		return
	}
	defer file.Close()

	st, err := s.ws.Import(file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	roots, err := s.ws.Tree()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"roots": roots})
}

func (s *Server) handleEditable(w http.ResponseWriter, r *http.Request) {
	ed, err := s.ws.Editable()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ed)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.ws.Translations().Stats())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	d, err := s.ws.Export(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+d.Filename+`"`)
	w.Write(d.Data)
}

// Edits

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	field, err := model.ParsePostField(req.Field)
	if err != nil {
		s.writeError(w, r, apperr.BadRequest(err.Error()))
		return
	}

	changed, err := s.ws.EditPost(field, req.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (s *Server) handleEditComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body string `json:"body"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	changed, err := s.ws.EditComment(chi.URLParam(r, "commentID"), req.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		s.writeError(w, r, apperr.BadRequest("Deleting a comment also deletes its replies; pass confirm=true"))
		return
	}

	deleted, err := s.ws.DeleteComment(chi.URLParam(r, "commentID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// Translation

// translateOptions reads optional {"from","to"} language codes.
func translateOptions(r *http.Request) (translate.Options, error) {
	var opts translate.Options
	if err := decode(r, &opts); err != nil {
		return opts, err
	}
	if opts.To != "" && !language.IsTarget(opts.To) {
		return opts, apperr.BadRequest("Unsupported target language: " + opts.To)
	}
	if opts.From != "" && opts.From != language.Auto {
		if _, ok := language.Lookup(opts.From); !ok {
			return opts, apperr.BadRequest("Unsupported source language: " + opts.From)
		}
	}
	return opts, nil
}

func (s *Server) handleTranslatePost(w http.ResponseWriter, r *http.Request) {
	opts, err := translateOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.ws.Translations().TranslatePost(r.Context(), opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	st := s.ws.State()
	if st.Thread == nil {
		s.writeError(w, r, apperr.NoActiveThread())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"post": st.Thread.Post})
}

func (s *Server) handleRevertPost(w http.ResponseWriter, r *http.Request) {
	reverted, err := s.ws.Translations().RevertPost()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"reverted": reverted})
}

func (s *Server) handleTranslateComment(w http.ResponseWriter, r *http.Request) {
	opts, err := translateOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "commentID")
	if err := s.ws.Translations().TranslateComment(r.Context(), id, opts); err != nil {
		s.writeError(w, r, err)
		return
	}

	st := s.ws.State()
	if st.Thread == nil {
		s.writeError(w, r, apperr.NoActiveThread())
		return
	}
	i := st.Thread.CommentIndex(id)
	if i < 0 {
		s.writeError(w, r, apperr.NotFound("Comment not found"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"comment": st.Thread.Comments[i]})
}

func (s *Server) handleRevertComment(w http.ResponseWriter, r *http.Request) {
	reverted, err := s.ws.Translations().RevertComment(chi.URLParam(r, "commentID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"reverted": reverted})
}

func (s *Server) handleTranslateAll(w http.ResponseWriter, r *http.Request) {
	opts, err := translateOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stats, err := s.ws.Translations().TranslateAll(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRevertAll(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ws.Translations().RevertAll()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// Recent threads

// recentSummary is a recent entry without its thread payload.
type recentSummary struct {
	ThreadID    string       `json:"id"`
	Title       string       `json:"title"`
	Subreddit   string       `json:"subreddit"`
	Author      string       `json:"author"`
	Timestamp   float64      `json:"timestamp"`
	LoadedAt    int64        `json:"loadedAt"`
	Source      model.Origin `json:"source"`
	OriginalURL string       `json:"originalUrl,omitempty"`
	Comments    int          `json:"comments"`
}

func (s *Server) handleListRecent(w http.ResponseWriter, r *http.Request) {
	entries := s.ws.Recent().List()
	out := make([]recentSummary, len(entries))
	for i, e := range entries {
		out[i] = recentSummary{
			ThreadID:    e.ThreadID,
			Title:       e.Title,
			Subreddit:   e.Subreddit,
			Author:      e.Author,
			Timestamp:   e.Timestamp,
			LoadedAt:    e.LoadedAt,
			Source:      e.Source,
			OriginalURL: e.OriginalURL,
			Comments:    len(e.Thread.Comments),
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"open":    s.ws.Recent().Open(),
		"entries": out,
	})
}

func (s *Server) handleClearRecent(w http.ResponseWriter, r *http.Request) {
	s.ws.Recent().Clear()
	w.WriteHeader(http.StatusNoContent)
}

// handleSetRecentOpen sets the panel flag, or toggles it when open is omitted.
func (s *Server) handleSetRecentOpen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Open *bool `json:"open"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var open bool
	if req.Open == nil {
		open = s.ws.Recent().Toggle()
	} else {
		open = *req.Open
		s.ws.Recent().SetOpen(open)
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"open": open})
}

func (s *Server) handleLoadRecent(w http.ResponseWriter, r *http.Request) {
	st, err := s.ws.LoadRecent(chi.URLParam(r, "threadID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleRemoveRecent(w http.ResponseWriter, r *http.Request) {
	if !s.ws.Recent().Remove(chi.URLParam(r, "threadID")) {
		s.writeError(w, r, apperr.NotFound("Recent thread not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
