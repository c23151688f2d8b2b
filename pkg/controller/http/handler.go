package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
	"github.com/secmon-lab/wayfinder/pkg/usecase"
	"github.com/secmon-lab/wayfinder/pkg/utils/errutil"
)

type DialogUseCase interface {
	HandleTurn(ctx context.Context, in model.TurnInput) (*model.TurnResult, error)
	SessionState(userID string) types.SessionState
}

type ProfileUseCase interface {
	GetProfile(ctx context.Context, userID string) (*usecase.ProfileView, error)
	ListFacts(ctx context.Context, userID string) ([]*model.FactEntry, error)
	SearchFacts(ctx context.Context, userID, query string, topK int) ([]model.ScoredFact, error)
}

var (
	_ DialogUseCase  = &usecase.DialogUseCase{}
	_ ProfileUseCase = &usecase.ProfileUseCase{}
)

// maxTurnBody bounds the size of a turn request
const maxTurnBody = 1 << 20

type sceneRequest struct {
	Caption string   `json:"caption"`
	Objects []string `json:"objects"`
	Text    string   `json:"text"`
}

type turnRequest struct {
	Utterance string        `json:"utterance"`
	Scene     *sceneRequest `json:"scene,omitempty"`
}

func (req *turnRequest) input(userID string) model.TurnInput {
	in := model.TurnInput{
		UserID:    userID,
		Utterance: req.Utterance,
	}
	if req.Scene != nil {
		in.Scene = &model.Scene{
			Caption: req.Scene.Caption,
			Objects: req.Scene.Objects,
			Text:    req.Scene.Text,
		}
	}
	return in
}

type factResponse struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
	Score     *int              `json:"score,omitempty"`
}

func toFactResponse(entry *model.FactEntry) factResponse {
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return factResponse{
		ID:        string(entry.ID),
		Text:      entry.Text,
		Metadata:  metadata,
		CreatedAt: entry.CreatedAt,
	}
}

type turnResponse struct {
	Reply       string         `json:"reply"`
	Mood        types.Mood     `json:"mood,omitempty"`
	Energy      types.Energy   `json:"energy,omitempty"`
	Situation   string         `json:"situation,omitempty"`
	Clock       string         `json:"clock,omitempty"`
	Voice       string         `json:"voice,omitempty"`
	Rate        string         `json:"rate,omitempty"`
	Audio       []byte         `json:"audio,omitempty"`
	IsDanger    bool           `json:"is_danger"`
	StoredFacts []factResponse `json:"stored_facts"`
}

func toTurnResponse(in model.TurnInput, result *model.TurnResult) turnResponse {
	resp := turnResponse{
		Reply:       result.Reply,
		Mood:        result.Affect.Mood,
		Energy:      result.Affect.Energy,
		Situation:   string(result.Situation.Label),
		Clock:       result.Situation.Clock,
		Audio:       result.Audio,
		IsDanger:    in.Scene.IsDanger(),
		StoredFacts: make([]factResponse, len(result.StoredFacts)),
	}
	if result.Voice != nil {
		resp.Voice = result.Voice.Name
		resp.Rate = result.Voice.Rate
	}
	for i, entry := range result.StoredFacts {
		resp.StoredFacts[i] = toFactResponse(entry)
	}
	return resp
}

// turnStatus maps a turn error to the HTTP status reported to the client
func turnStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrEmptyUserID):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, usecase.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func turnHandler(dialog DialogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := chi.URLParam(r, "userID")

		var req turnRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTurnBody)).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid turn request", goerr.V(usecase.UserIDKey, userID)), http.StatusBadRequest)
			return
		}

		in := req.input(userID)
		result, err := dialog.HandleTurn(ctx, in)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, turnStatus(err))
			return
		}

		writeJSON(w, r, http.StatusOK, toTurnResponse(in, result))
	}
}

type profileResponse struct {
	UserID      string             `json:"user_id"`
	Name        *string            `json:"name"`
	Interests   []string           `json:"interests"`
	Mood        types.Mood         `json:"mood"`
	Energy      types.Energy       `json:"energy"`
	Description string             `json:"description"`
	Known       bool               `json:"known"`
	State       types.SessionState `json:"state"`
	CreatedAt   *time.Time         `json:"created_at,omitempty"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty"`
}

func profileHandler(profiles ProfileUseCase, dialog DialogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := chi.URLParam(r, "userID")

		view, err := profiles.GetProfile(ctx, userID)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, usecase.ErrEmptyUserID) {
				status = http.StatusBadRequest
			}
			errutil.HandleHTTP(ctx, w, err, status)
			return
		}

		p := view.Profile
		resp := profileResponse{
			UserID:      userID,
			Interests:   p.Interests,
			Mood:        p.Affect.Mood,
			Energy:      p.Affect.Energy,
			Description: view.Description,
			Known:       view.Known,
			State:       dialog.SessionState(userID),
		}
		if resp.Interests == nil {
			resp.Interests = []string{}
		}
		if p.HasName() {
			resp.Name = &p.Name
		}
		if view.Known {
			resp.CreatedAt = &p.CreatedAt
			resp.UpdatedAt = &p.UpdatedAt
		}

		writeJSON(w, r, http.StatusOK, resp)
	}
}

type factsResponse struct {
	Facts   []factResponse `json:"facts"`
	Context string         `json:"context,omitempty"`
}

// factsHandler lists every fact of the user, or ranks them when the q
// parameter is given. k limits the number of ranked results.
func factsHandler(profiles ProfileUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := chi.URLParam(r, "userID")
		query := r.URL.Query().Get("q")

		topK := 0
		if k := r.URL.Query().Get("k"); k != "" {
			v, err := strconv.Atoi(k)
			if err != nil || v < 0 {
				errutil.HandleHTTP(ctx, w, goerr.New("invalid k parameter", goerr.V("k", k)), http.StatusBadRequest)
				return
			}
			topK = v
		}

		resp := factsResponse{Facts: []factResponse{}}
		if query == "" {
			entries, err := profiles.ListFacts(ctx, userID)
			if err != nil {
				errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
				return
			}
			for _, entry := range entries {
				resp.Facts = append(resp.Facts, toFactResponse(entry))
			}
			writeJSON(w, r, http.StatusOK, resp)
			return
		}

		results, err := profiles.SearchFacts(ctx, userID, query, topK)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}
		for _, result := range results {
			f := toFactResponse(result.Entry)
			f.Score = &result.Score
			resp.Facts = append(resp.Facts, f)
		}
		resp.Context = model.RenderFacts(model.Entries(results))

		writeJSON(w, r, http.StatusOK, resp)
	}
}
