package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/render"
	"github.com/kotobanote/kotoba-backend/internal/service/words"
)

// wordsService defines the minimal interface needed by WordsHandler.
type wordsService interface {
	ListByScope(ctx context.Context, scopeID string) (*words.ScopeView, error)
	GetWord(ctx context.Context, id int64) (*domain.Word, error)
	GetTestCard(ctx context.Context, id int64, kind category.TestKind) (*render.TestCard, error)
	UpdateWord(ctx context.Context, input words.UpdateInput) (*domain.Word, error)
	SetLearned(ctx context.Context, id int64, side domain.Side, value bool) error
	MarkStudied(ctx context.Context, ids []int64) error
}

// WordsHandler serves word listing and editing endpoints.
type WordsHandler struct {
	svc wordsService
	log *slog.Logger
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(svc wordsService, logger *slog.Logger) *WordsHandler {
	return &WordsHandler{svc: svc, log: logger.With("handler", "words")}
}

type segmentResponse struct {
	Field   string  `json:"field"`
	Role    string  `json:"role"`
	Text    string  `json:"text"`
	Label   *string `json:"label,omitempty"`
	Masked  bool    `json:"masked"`
	MaskKey string  `json:"maskKey,omitempty"`
}

type panelResponse struct {
	Label    string            `json:"label"`
	Side     string            `json:"side"`
	Segments []segmentResponse `json:"segments"`
}

type rowResponse struct {
	WordID            int64           `json:"wordId"`
	Panels            []panelResponse `json:"panels"`
	IsLearnedCategory bool            `json:"isLearnedCategory"`
	IsLearnedMeaning  bool            `json:"isLearnedMeaning"`
	LockedKeys        []string        `json:"lockedKeys"`
}

type scopeViewResponse struct {
	ScopeID     string        `json:"scopeId"`
	Category    string        `json:"category"`
	HeaderLeft  string        `json:"headerLeft"`
	HeaderRight string        `json:"headerRight"`
	Rows        []rowResponse `json:"rows"`
}

type groupMemberPayload struct {
	RawWord                 string  `json:"rawWord"`
	Yomigana                string  `json:"yomigana"`
	CustomLabel             *string `json:"customLabel,omitempty"`
	ExampleSentence         *string `json:"exampleSentence,omitempty"`
	ExampleSentenceYomigana *string `json:"exampleSentenceYomigana,omitempty"`
}

type wordResponse struct {
	ID                      int64                `json:"id"`
	Page                    int                  `json:"page"`
	NumberInPage            int                  `json:"numberInPage"`
	Category                string               `json:"category"`
	RawWord                 string               `json:"rawWord"`
	Yomigana                string               `json:"yomigana"`
	RawMeaning              string               `json:"rawMeaning"`
	ExampleSentence         *string              `json:"exampleSentence,omitempty"`
	ExampleSentenceYomigana *string              `json:"exampleSentenceYomigana,omitempty"`
	GroupMembers            []groupMemberPayload `json:"groupMembers,omitempty"`
	IsLearnedCategory       bool                 `json:"isLearnedCategory"`
	IsLearnedMeaning        bool                 `json:"isLearnedMeaning"`
}

type testCardResponse struct {
	WordID   int64         `json:"wordId"`
	Label    string        `json:"label"`
	Question panelResponse `json:"question"`
	Answer   panelResponse `json:"answer"`
}

// ListByScope handles GET /api/scopes/{scopeID}/words.
func (h *WordsHandler) ListByScope(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.ListByScope(r.Context(), r.PathValue("scopeID"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	rows := make([]rowResponse, len(view.Rows))
	for i, row := range view.Rows {
		locked := row.LockedKeys
		if locked == nil {
			locked = []string{}
		}
		rows[i] = rowResponse{
			WordID:            row.Row.WordID,
			Panels:            toPanels(row.Row.Panels),
			IsLearnedCategory: row.IsLearnedCategory,
			IsLearnedMeaning:  row.IsLearnedMeaning,
			LockedKeys:        locked,
		}
	}

	writeJSON(w, http.StatusOK, scopeViewResponse{
		ScopeID:     view.Scope.ID,
		Category:    view.Scope.Category.String(),
		HeaderLeft:  view.HeaderLeft,
		HeaderRight: view.HeaderRight,
		Rows:        rows,
	})
}

// Get handles GET /api/words/{id}.
func (h *WordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	word, err := h.svc.GetWord(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toWordResponse(word))
}

// TestCard handles GET /api/words/{id}/test-card?kind=category|meaning.
func (h *WordsHandler) TestCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	kind := category.TestKind(r.URL.Query().Get("kind"))
	card, err := h.svc.GetTestCard(r.Context(), id, kind)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, testCardResponse{
		WordID:   card.WordID,
		Label:    card.Label,
		Question: toPanel(card.Question),
		Answer:   toPanel(card.Answer),
	})
}

type updateWordRequest struct {
	RawWord                 string               `json:"rawWord"`
	Yomigana                string               `json:"yomigana"`
	RawMeaning              string               `json:"rawMeaning"`
	ExampleSentence         *string              `json:"exampleSentence"`
	ExampleSentenceYomigana *string              `json:"exampleSentenceYomigana"`
	GroupMembers            []groupMemberPayload `json:"groupMembers"`
}

// Update handles PUT /api/words/{id}.
func (h *WordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	members := make([]domain.GroupMember, len(req.GroupMembers))
	for i, m := range req.GroupMembers {
		members[i] = domain.GroupMember(m)
	}
	if len(members) == 0 {
		members = nil
	}

	word, err := h.svc.UpdateWord(r.Context(), words.UpdateInput{
		ID:                      id,
		RawWord:                 req.RawWord,
		Yomigana:                req.Yomigana,
		RawMeaning:              req.RawMeaning,
		ExampleSentence:         req.ExampleSentence,
		ExampleSentenceYomigana: req.ExampleSentenceYomigana,
		GroupMembers:            members,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toWordResponse(word))
}

type setLearnedRequest struct {
	Side    string `json:"side"`
	Learned bool   `json:"learned"`
}

// SetLearned handles PUT /api/words/{id}/learned.
func (h *WordsHandler) SetLearned(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req setLearnedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetLearned(r.Context(), id, domain.Side(req.Side), req.Learned); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type markStudiedRequest struct {
	WordIDs []int64 `json:"wordIds"`
}

// MarkStudied handles POST /api/words/studied.
func (h *WordsHandler) MarkStudied(w http.ResponseWriter, r *http.Request) {
	var req markStudiedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.MarkStudied(r.Context(), req.WordIDs); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid word id")
		return 0, false
	}
	return id, true
}

func toPanels(panels []render.Panel) []panelResponse {
	out := make([]panelResponse, len(panels))
	for i, p := range panels {
		out[i] = toPanel(p)
	}
	return out
}

func toPanel(p render.Panel) panelResponse {
	segments := make([]segmentResponse, len(p.Segments))
	for i, seg := range p.Segments {
		segments[i] = segmentResponse{
			Field:   string(seg.Field),
			Role:    string(seg.Role),
			Text:    seg.Text,
			Label:   seg.Label,
			Masked:  seg.Masked,
			MaskKey: seg.MaskKey,
		}
	}
	return panelResponse{Label: p.Label, Side: string(p.Side), Segments: segments}
}

func toWordResponse(word *domain.Word) wordResponse {
	members := make([]groupMemberPayload, len(word.GroupMembers))
	for i, m := range word.GroupMembers {
		members[i] = groupMemberPayload(m)
	}
	if len(members) == 0 {
		members = nil
	}
	return wordResponse{
		ID:                      word.ID,
		Page:                    word.Page,
		NumberInPage:            word.NumberInPage,
		Category:                word.Category.String(),
		RawWord:                 word.RawWord,
		Yomigana:                word.Yomigana,
		RawMeaning:              word.RawMeaning,
		ExampleSentence:         word.ExampleSentence,
		ExampleSentenceYomigana: word.ExampleSentenceYomigana,
		GroupMembers:            members,
		IsLearnedCategory:       word.IsLearnedCategory,
		IsLearnedMeaning:        word.IsLearnedMeaning,
	}
}
