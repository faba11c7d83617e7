package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	errorvalues "github.com/limbo/moodlog/internal/error_values"
	"github.com/limbo/moodlog/internal/service"
	"github.com/limbo/moodlog/pkg/entity"
	"github.com/limbo/moodlog/pkg/httputil"
)

const dateLayout = "2006-01-02"

type LogMoodRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

type RefreshSettingsRequest struct {
	Mode  string `json:"mode"`
	Unit  string `json:"unit"`
	Every int    `json:"every"`
}

type RefreshStateResponse struct {
	Settings entity.RefreshSettings `json:"settings"`
	Snapshot *Snapshot              `json:"snapshot,omitempty"`
}

func (s *Server) LogMood(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LogMoodRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("log mood error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, err := s.moodsService.LogMood(ctx, &service.LogMoodRequest{
		Mood: req.Mood,
		Note: req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUnknownMood):
			logger.Error("log mood error: unknown or missing mood")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "choose one of the known moods", nil)
		case errors.Is(err, errorvalues.ErrNoteTooLong):
			logger.Error("log mood error: note too long")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "note is too long", nil)
		case errors.Is(err, errorvalues.ErrStoreUnavailable):
			logger.Error("log mood error: store unavailable", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadGateway, "entry store unavailable, please retry", nil)
		default:
			logger.Error("log mood error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while logging mood", nil)
		}
		return
	}
	// Submission refreshes the chart right away, ahead of any pending tick
	if rng, ok := s.refresher.LastRange(); ok {
		if _, err := s.refresher.Refresh(ctx, rng); err != nil {
			logger.Warn("refresh after submission failed", slog.String("error", err.Error()))
		}
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"entry": entry})
	logger.Info("mood logged")
}

func (s *Server) MoodOverview(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	rng, err := rangeFromQuery(r)
	if err != nil {
		logger.Error("mood overview error: bad date selection")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "provide date or start/end as YYYY-MM-DD", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	snap, err := s.refresher.Refresh(ctx, rng)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidRange):
			logger.Error("mood overview error: start after end")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "range start is after range end", nil)
		case errors.Is(err, errorvalues.ErrStoreUnavailable):
			logger.Error("mood overview error: store unavailable", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadGateway, "entry store unavailable, please retry", nil)
		default:
			logger.Error("mood overview error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while aggregating moods", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, snap)
	logger.Info("overview provided")
}

func (s *Server) GetRefreshSettings(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, RefreshStateResponse{
		Settings: s.refresher.Settings(),
		Snapshot: s.refresher.LastSnapshot(),
	})
}

func (s *Server) UpdateRefreshSettings(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RefreshSettingsRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update refresh error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	err = s.refresher.Configure(entity.RefreshSettings{
		Mode:  entity.RefreshMode(req.Mode),
		Unit:  req.Unit,
		Every: req.Every,
	})
	if err != nil {
		logger.Error("update refresh error: bad settings", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid refresh settings", err)
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("refresh settings updated")
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"status": "ok"})
}

// rangeFromQuery accepts either ?date= for a single day or ?start=&end=.
func rangeFromQuery(r *http.Request) (entity.DateRange, error) {
	q := r.URL.Query()
	if day := q.Get("date"); day != "" {
		d, err := time.Parse(dateLayout, day)
		if err != nil {
			return entity.DateRange{}, err
		}
		return entity.DateRange{Start: d, End: d}, nil
	}
	start, err := time.Parse(dateLayout, q.Get("start"))
	if err != nil {
		return entity.DateRange{}, err
	}
	end, err := time.Parse(dateLayout, q.Get("end"))
	if err != nil {
		return entity.DateRange{}, err
	}
	return entity.DateRange{Start: start, End: end}, nil
}
