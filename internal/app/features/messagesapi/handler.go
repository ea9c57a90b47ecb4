// Package messagesapi provides the contact message endpoints.
//
// Submission is public (rate limited per client IP); the inbox side - list,
// flag, delete - lives behind the admin API key. Submitters get back an
// opaque reference token, never a document id.
package messagesapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	messagestore "github.com/dimondcastle/cms/internal/app/store/messages"
	"github.com/dimondcastle/cms/internal/app/store/ratelimit"
	"github.com/dimondcastle/cms/internal/app/system/jsonutil"
	"github.com/dimondcastle/cms/internal/app/system/network"
	"github.com/dimondcastle/cms/internal/app/system/normalize"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Field limits for the public form. Anything longer is not a real inquiry.
const (
	maxNameLen    = 200
	maxEmailLen   = 254
	maxPhoneLen   = 40
	maxSubjectLen = 300
	maxBodyLen    = 10000
)

// Handler handles contact message requests.
type Handler struct {
	store   *messagestore.Store
	limiter *ratelimit.Store
	logger  *zap.Logger
}

// NewHandler creates a new messages handler.
func NewHandler(db *mongo.Database, limiter *ratelimit.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:   messagestore.New(db),
		limiter: limiter,
		logger:  logger,
	}
}

// SubmitInput is the public submission payload.
type SubmitInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (in *SubmitInput) validate() map[string]string {
	fields := map[string]string{}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalize.Email(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Body = strings.TrimSpace(in.Body)

	if in.Name == "" || len(in.Name) > maxNameLen {
		fields["name"] = "Name is required."
	}
	if !strings.Contains(in.Email, "@") || len(in.Email) > maxEmailLen {
		fields["email"] = "A valid email address is required."
	}
	if len(in.Phone) > maxPhoneLen {
		fields["phone"] = "Phone number is too long."
	}
	if len(in.Subject) > maxSubjectLen {
		fields["subject"] = "Subject is too long."
	}
	if in.Body == "" || len(in.Body) > maxBodyLen {
		fields["body"] = "Message is required."
	}
	return fields
}

// Submit handles the public POST /. Returns 429 when the client IP is over
// the submission limit.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ip := network.GetClientIP(r)

	allowed, _, blockedUntil := h.limiter.CheckAllowed(r.Context(), ip)
	if !allowed {
		if blockedUntil != nil {
			secs := int64(time.Until(*blockedUntil).Seconds()) + 1
			if secs > 0 {
				w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
			}
		}
		jsonutil.Error(w, http.StatusTooManyRequests, "too many messages, try again later")
		return
	}

	var in SubmitInput
	if err := jsonutil.Decode(w, r, &in); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if fields := in.validate(); len(fields) > 0 {
		jsonutil.ValidationError(w, fields)
		return
	}

	msg, err := h.store.Insert(r.Context(), models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Body:    in.Body,
	})
	if err != nil {
		h.logger.Error("failed to store contact message", zap.Error(err))
		jsonutil.InternalError(w, "failed to submit message")
		return
	}

	h.limiter.Record(r.Context(), ip)
	h.logger.Info("contact message received", zap.String("reference", msg.Reference))

	jsonutil.Created(w, map[string]string{"reference": msg.Reference})
}

// List handles the admin GET / with optional seen, resolved, page, limit
// query params.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := messagestore.ListFilter{
		Seen:     queryBool(r, "seen"),
		Resolved: queryBool(r, "resolved"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}

	items, total, err := h.store.List(r.Context(), f)
	if err != nil {
		h.logger.Error("failed to list messages", zap.Error(err))
		jsonutil.InternalError(w, "failed to list messages")
		return
	}
	if items == nil {
		items = []models.ContactMessage{}
	}

	jsonutil.OK(w, map[string]any{
		"items": items,
		"total": total,
	})
}

// Get handles the admin GET /{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	msg, err := h.store.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "message not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get message", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to get message")
		return
	}
	jsonutil.OK(w, msg)
}

// FlagsInput carries the optional flag updates for PATCH /{id}.
type FlagsInput struct {
	Seen     *bool `json:"seen"`
	Resolved *bool `json:"resolved"`
}

// Patch handles the admin PATCH /{id}: updates seen/resolved flags.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in FlagsInput
	if err := jsonutil.Decode(w, r, &in); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if in.Seen == nil && in.Resolved == nil {
		jsonutil.BadRequest(w, "no fields to update")
		return
	}

	msg, err := h.store.SetFlags(r.Context(), id, in.Seen, in.Resolved)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "message not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to update message flags", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update message")
		return
	}
	jsonutil.OK(w, msg)
}

// Delete handles the admin DELETE /{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.store.Delete(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "message not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete message", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete message")
		return
	}

	h.logger.Info("contact message deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) int64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func queryBool(r *http.Request, name string) *bool {
	switch r.URL.Query().Get(name) {
	case "true", "1":
		t := true
		return &t
	case "false", "0":
		f := false
		return &f
	default:
		return nil
	}
}
