package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quizshare-service/internal/app"
	"quizshare-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the quiz use cases over REST.
type Handler struct {
	service    *app.QuizService
	adminToken string
}

// NewHandler wires the service into HTTP. adminToken guards deletion; when
// empty, deletion is disabled entirely.
func NewHandler(service *app.QuizService, adminToken string) *Handler {
	return &Handler{service: service, adminToken: adminToken}
}

// Router builds the route table. The bare /{token} route resolves shareable
// short links and must stay last so static routes win.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Route("/api/quizzes", func(r chi.Router) {
		r.Post("/", h.createQuiz)
		r.Get("/", h.listQuizzes)
		r.Get("/{slug}", h.getQuiz)
		r.Delete("/{slug}", h.deleteQuiz)
		r.Post("/{slug}/attempts", h.scoreAttempt)
	})
	r.Get("/{token}", h.redirect)
	return r
}

type createQuizRequest struct {
	Name    string                `json:"name"`
	Subject string                `json:"subject"`
	Slug    string                `json:"slug"`
	Content []domain.QuestionItem `json:"content"`
}

type attemptRequest struct {
	ChosenOptions []string `json:"chosenOptions"`
}

type quizSummary struct {
	Name         string `json:"name"`
	Subject      string `json:"subject"`
	Slug         string `json:"slug"`
	RedirectLink string `json:"redirectLink"`
	OriginalLink string `json:"originalLink"`
}

type reviewOption struct {
	Label       string `json:"label"`
	Text        string `json:"text"`
	Correct     bool   `json:"correct"`
	ChosenWrong bool   `json:"chosenWrong"`
}

type reviewQuestion struct {
	Question string         `json:"question"`
	Verdict  domain.Verdict `json:"verdict"`
	Options  []reviewOption `json:"options"`
}

func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req createQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quiz, err := h.service.Create(r.Context(), req.Name, req.Subject, req.Slug, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Quiz created successfully",
		"quiz":    quiz,
	})
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	summaries := make([]quizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, quizSummary{
			Name:         q.Name,
			Subject:      q.Subject,
			Slug:         q.Slug,
			RedirectLink: q.RedirectLink,
			OriginalLink: q.OriginalLink,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"quizzes": summaries,
	})
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"quiz":    quiz,
	})
}

func (h *Handler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusForbidden, "deletion not authorized")
		return
	}
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Quiz deleted successfully",
	})
}

func (h *Handler) scoreAttempt(w http.ResponseWriter, r *http.Request) {
	var req attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quiz, result, err := h.service.ScoreAttempt(r.Context(), chi.URLParam(r, "slug"), req.ChosenOptions)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
		"review":  buildReview(quiz, result),
	})
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	http.Redirect(w, r, quiz.OriginalLink, http.StatusFound)
}

// buildReview renders the per-question feedback the result page needs: the
// correct option is always flagged, and the taker's wrong pick is flagged
// separately so the two states stay visually distinct.
func buildReview(quiz domain.Quiz, result domain.AttemptResult) []reviewQuestion {
	key := app.AnswerKey(quiz)
	review := make([]reviewQuestion, len(quiz.Content))
	for i, item := range quiz.Content {
		opts := make([]reviewOption, len(item.Options))
		for j, opt := range item.Options {
			opts[j] = reviewOption{
				Label:       app.OptionLabel(j),
				Text:        opt,
				Correct:     opt == key[i],
				ChosenWrong: result.Verdicts[i] == domain.VerdictIncorrect && opt == result.ChosenOptions[i],
			}
		}
		review[i] = reviewQuestion{
			Question: item.Question,
			Verdict:  result.Verdicts[i],
			Options:  opts,
		}
	}
	return review
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.adminToken == "" {
		return false
	}
	given := r.Header.Get("X-Admin-Token")
	return subtle.ConstantTimeCompare([]byte(given), []byte(h.adminToken)) == 1
}

func writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrQuizExists):
		writeError(w, http.StatusConflict, "Quiz with same name is already exists")
	case errors.Is(err, domain.ErrQuizNotFound):
		writeError(w, http.StatusNotFound, "quiz not found")
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}
