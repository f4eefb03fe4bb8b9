package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/api/dto"
	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/milestone"
	"github.com/spec-kit/celebration-service/internal/service"
	"github.com/spec-kit/celebration-service/internal/snapshot"
)

const streamKeepAlive = 25 * time.Second

// StreamHandler pushes re-evaluated task and alert views as server-sent
// events whenever the customer collection changes.
type StreamHandler struct {
	hub         *snapshot.Hub
	taskService *service.TaskService
	logger      *zap.Logger
}

// NewStreamHandler constructs handler.
func NewStreamHandler(hub *snapshot.Hub, taskService *service.TaskService, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, taskService: taskService, logger: logger}
}

// Staff handles GET /staff/stream.
func (h *StreamHandler) Staff(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	staffID := actor.ID
	return h.stream(c, actor, snapshot.Query{AssignedStaffID: &staffID})
}

// Admin handles GET /admin/stream.
func (h *StreamHandler) Admin(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	return h.stream(c, actor, snapshot.Query{})
}

func (h *StreamHandler) stream(c *fiber.Ctx, viewer domain.Principal, q snapshot.Query) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// The fiber context is recycled once the handler returns, so the stream
	// owns its own context. It ends when a write fails or the hub closes.
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		updates := h.hub.Subscribe(ctx, q)
		ticker := time.NewTicker(streamKeepAlive)
		defer ticker.Stop()

		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				if err := h.writeSnapshot(w, viewer, snap); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func (h *StreamHandler) writeSnapshot(w *bufio.Writer, viewer domain.Principal, snap snapshot.Snapshot) error {
	if snap.Err != nil {
		if err := writeEvent(w, "error", fiber.Map{"code": "STORE_UNAVAILABLE", "message": "customer snapshot unavailable"}); err != nil {
			return err
		}
		return w.Flush()
	}

	view := h.taskService.View(snap.Customers, viewer)
	if err := writeEvent(w, streamEventName(view), snapshotResponse(view, h.taskService.Today())); err != nil {
		h.logger.Debug("stream closed", zap.String("principal_id", viewer.ID), zap.Error(err))
		return err
	}
	return w.Flush()
}

func streamEventName(view milestone.View) string {
	if view.Role == domain.RoleAdmin {
		return "alerts"
	}
	return "tasks"
}

func snapshotResponse(view milestone.View, today time.Time) fiber.Map {
	resp := fiber.Map{"today": today.Format(dto.DateLayout)}
	if view.Role == domain.RoleAdmin {
		resp["alerts"] = alertResponses(view.Alerts)
	} else {
		resp["tasks"] = taskResponses(view.Tasks)
	}
	return resp
}

// writeEvent writes one server-sent event with a JSON data line.
func writeEvent(w io.Writer, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
