package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/session"
)

type sessionView struct {
	ID         string                  `json:"id"`
	State      session.Kind            `json:"state"`
	Language   catalog.Language        `json:"language"`
	User       *session.User           `json:"user,omitempty"`
	Pending    *catalog.Specialization `json:"pending,omitempty"`
	Assessment *assessmentView         `json:"assessment,omitempty"`
}

type assessmentView struct {
	Spec      catalog.Specialization `json:"spec"`
	Loaded    bool                   `json:"loaded"`
	Current   int                    `json:"current"`
	Total     int                    `json:"total"`
	Finished  bool                   `json:"finished"`
	Questions []questionView         `json:"questions,omitempty"`
}

// questionView omits the correct answer.
type questionView struct {
	Question   string                `json:"question"`
	Options    []string              `json:"options"`
	Difficulty assessment.Difficulty `json:"difficulty"`
	Answer     *int                  `json:"answer,omitempty"`
}

func viewOf(s *session.Session) sessionView {
	snap := s.Snapshot()
	v := sessionView{
		ID:       snap.ID,
		State:    snap.Kind,
		Language: snap.Language,
		User:     snap.User,
		Pending:  snap.Pending,
	}
	if as := snap.Assessment; as != nil {
		av := &assessmentView{
			Spec:     as.Spec,
			Loaded:   len(as.Questions) > 0,
			Current:  as.Current,
			Total:    len(as.Questions),
			Finished: as.Finished,
		}
		for i, q := range as.Questions {
			qv := questionView{Question: q.Question, Options: q.Options, Difficulty: q.Difficulty}
			if i < len(as.Answers) && as.Answers[i] >= 0 {
				a := as.Answers[i]
				qv.Answer = &a
			}
			av.Questions = append(av.Questions, qv)
		}
		v.Assessment = av
	}
	return v
}

type languageRequest struct {
	Lang string `json:"lang" validate:"omitempty,oneof=ar en"`
}

type selectRequest struct {
	Specialization string `json:"specialization" validate:"required"`
}

type answerRequest struct {
	Question *int `json:"question" validate:"required,min=0"`
	Option   *int `json:"option" validate:"required,min=0"`
}

type submitRequest struct {
	Submission string `json:"submission" validate:"max=20000"`
}

type chatRequest struct {
	Message string `json:"message" validate:"max=4000"`
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, s.log, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) save(ctx context.Context, sess *session.Session) {
	if err := s.registry.Save(ctx, sess); err != nil {
		s.log.Error("failed to save session", "session_id", sess.ID(), "error", err)
	}
}

// mutate applies fn and answers with the resulting session. The session is
// saved even when fn fails, since a guard redirect still moves it.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	err := fn(sess)
	s.save(r.Context(), sess)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	respondJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.registry.Create(r.Context())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, viewOf(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.registry.Delete(r.Context(), id); err != nil {
		writeError(w, s.log, err)
		return
	}
	s.mentor.Forget(id)
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	route := sess.Resolve(session.ParseRoute(r.URL.Query().Get("path")))
	respondJSON(w, http.StatusOK, map[string]string{"route": route.String()})
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	s.mutate(w, r, func(sess *session.Session) error {
		if req.Lang == "" {
			sess.ToggleLanguage()
			return nil
		}
		sess.SetLanguage(catalog.Language(req.Lang))
		return nil
	})
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, (*session.Session).Browse)
}

func (s *Server) handleBeginLogin(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, (*session.Session).BeginLogin)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	s.mutate(w, r, func(sess *session.Session) error {
		return sess.SelectSpecialization(catalog.Specialization(req.Specialization))
	})
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req session.Credentials
	if err := decodeBody(r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	s.mutate(w, r, func(sess *session.Session) error {
		return sess.Authenticate(req)
	})
}

func (s *Server) handleRetake(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, (*session.Session).Retake)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) error {
		if err := sess.Logout(); err != nil {
			return err
		}
		s.mentor.Forget(sess.ID())
		return nil
	})
}

func (s *Server) handleStartAssessment(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) error {
		_, err := s.mentor.StartPlacement(r.Context(), sess)
		return err
	})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	s.mutate(w, r, func(sess *session.Session) error {
		return sess.RecordAnswer(*req.Question, *req.Option)
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	done, err := sess.Advance()
	s.save(r.Context(), sess)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	e, err := sess.Engine()
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"done": done, "current": e.Current()})
}

func (s *Server) handleCompleteAssessment(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	res, err := s.mentor.FinishPlacement(r.Context(), sess)
	s.save(r.Context(), sess)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"score":      res.Score,
		"level":      res.Level,
		"label":      res.Label,
		"levelLabel": res.LabelIn(sess.Language()),
	})
}
