package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"wikiflow/internal/domain/models/audit"
	auditRepo "wikiflow/internal/domain/repositories/audit"
	wikiSvc "wikiflow/internal/domain/services/wiki"
	"wikiflow/internal/handler/sse"
	"wikiflow/internal/httputil"
)

const activityEventName = "activity"

// ActivityStreamHandler streams a space's public activity over Server-Sent Events
type ActivityStreamHandler struct {
	spaceService wikiSvc.SpaceService
	feed         auditRepo.ActivityFeed
	cfg          *sse.Config
	logger       *slog.Logger
}

// NewActivityStreamHandler creates a new activity stream handler. A nil cfg
// uses sse.DefaultConfig.
func NewActivityStreamHandler(spaceService wikiSvc.SpaceService, feed auditRepo.ActivityFeed, cfg *sse.Config, logger *slog.Logger) *ActivityStreamHandler {
	if cfg == nil {
		cfg = sse.DefaultConfig()
	}
	return &ActivityStreamHandler{
		spaceService: spaceService,
		feed:         feed,
		cfg:          cfg,
		logger:       logger,
	}
}

// StreamActivity replays recent events oldest first, then forwards live ones
// until the client disconnects. ?replay=false skips the replay.
// GET /api/spaces/{spaceKey}/activity/stream
func (h *ActivityStreamHandler) StreamActivity(w http.ResponseWriter, r *http.Request) {
	key, ok := PathParam(w, r, "spaceKey", "Space key")
	if !ok {
		return
	}

	space, err := h.spaceService.GetSpace(r.Context(), key)
	if err != nil {
		handleError(w, err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Subscribe before replaying so nothing published in between is lost
	events, err := h.feed.Subscribe(ctx, space.Key)
	if err != nil {
		h.logger.Error("activity subscribe failed", "space_key", space.Key, "error", err)
		httputil.RespondError(w, http.StatusServiceUnavailable, "Activity stream unavailable")
		return
	}

	var recent []audit.Event
	if r.URL.Query().Get("replay") != "false" {
		recent, err = h.feed.Recent(ctx, space.Key, h.cfg.ReplayLimit)
		if err != nil {
			h.logger.Warn("activity replay failed", "space_key", space.Key, "error", err)
			recent = nil
		}
	}

	// The server's write timeout would cut long-lived streams
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	writer, err := sse.NewWriter(w)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	h.logger.Info("activity stream opened", "space_key", space.Key, "replayed", len(recent))
	defer h.logger.Info("activity stream closed", "space_key", space.Key)

	for i := len(recent) - 1; i >= 0; i-- {
		if !h.send(writer, &recent[i]) {
			return
		}
	}

	keepAlive := sse.NewKeepAlive(h.cfg.KeepAliveInterval)
	clientGone := keepAlive.Start(writer, h.logger)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-clientGone:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if !h.send(writer, &event) {
				return
			}
		}
	}
}

func (h *ActivityStreamHandler) send(writer *sse.Writer, event *audit.Event) bool {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("skipping unencodable activity event", "event_id", event.ID, "error", err)
		return true
	}
	if err := writer.WriteEvent(activityEventName, event.ID, data); err != nil {
		h.logger.Debug("activity stream write failed", "error", err)
		return false
	}
	return true
}
