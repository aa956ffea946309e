package api

import (
	"net/http"

	"github.com/abhisek/educareer/internal/oracle"
	"github.com/abhisek/educareer/internal/session"
)

type taskView struct {
	Task     *oracle.Task     `json:"task"`
	Feedback *oracle.Feedback `json:"feedback,omitempty"`
}

// reviewView carries feedback. Fallback marks the safe value returned
// when the review failed; it cannot be confirmed.
type reviewView struct {
	Feedback *oracle.Feedback `json:"feedback"`
	Fallback bool             `json:"fallback"`
}

type chatView struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

func (s *Server) handleDailyTask(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	task, err := s.mentor.DailyTask(r.Context(), sess)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	_, fb := s.mentor.CurrentTask(sess.ID())
	respondJSON(w, http.StatusOK, taskView{Task: task, Feedback: fb})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	fb, err := s.mentor.Submit(r.Context(), sess, req.Submission)
	if err != nil && fb == nil {
		writeError(w, s.log, err)
		return
	}
	respondJSON(w, http.StatusOK, reviewView{Feedback: fb, Fallback: err != nil})
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	err := s.mentor.Confirm(r.Context(), sess)
	s.save(r.Context(), sess)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	respondJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	reply, err := s.mentor.Chat(r.Context(), sess, req.Message)
	if err != nil && reply == "" {
		writeError(w, s.log, err)
		return
	}
	respondJSON(w, http.StatusOK, chatView{Reply: reply, Fallback: err != nil})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.mentor.Transcript(sess.ID()))
}

// requireUser writes the guard redirect for sessions without a user.
func requireUser(w http.ResponseWriter, sess *session.Session) (*session.User, bool) {
	u := sess.User()
	if u == nil {
		w.Header().Set("X-Redirect", session.RouteAuth.String())
		respondError(w, http.StatusConflict, "guard_redirect", "login required")
		return nil, false
	}
	return u, true
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	u, ok := requireUser(w, sess)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, session.BuildPortfolio(u, sess.Catalog(), sess.Language()))
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	u, ok := requireUser(w, sess)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, session.Projects(u))
}
