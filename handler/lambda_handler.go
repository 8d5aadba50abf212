package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"blogwriter/metrics"
)

const timestampLayout = "2006-01-02_15-04-05"

// Generator produces blog text for a topic.
type Generator interface {
	Generate(ctx context.Context, topic string) (string, error)
}

// Store persists blog text under a key.
type Store interface {
	Store(ctx context.Context, key, body string) error
}

// Handler turns invocation events into blog posts. It holds no per-invocation state.
type Handler struct {
	generator Generator
	store     Store
	keyPrefix string
	metrics   metrics.Recorder
	now       func() time.Time
}

// NewHandler wires the generator and store. A nil recorder disables metrics.
func NewHandler(g Generator, s Store, keyPrefix string, rec metrics.Recorder) *Handler {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &Handler{
		generator: g,
		store:     s,
		keyPrefix: keyPrefix,
		metrics:   rec,
		now:       time.Now,
	}
}

type requestIDKey struct{}

// WithRequestID tags ctx with an id used in log lines when no Lambda context is present.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// Handle processes one event. The error result is always nil: every failure is
// reported through the response status.
func (h *Handler) Handle(ctx context.Context, event Event) (resp Response, err error) {
	entry := log.WithField("request_id", requestID(ctx))
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			entry.Errorf("Lambda execution error: %s", msg)
			resp = errorResponse(http.StatusInternalServerError, msg)
		}
		h.metrics.IncRequests(resp.StatusCode)
	}()
	return h.handle(ctx, entry, event), nil
}

func (h *Handler) handle(ctx context.Context, entry *logrus.Entry, event Event) Response {
	body, err := event.payload()
	if err != nil {
		entry.Errorf("Lambda execution error: %v", err)
		return errorResponse(http.StatusInternalServerError, err.Error())
	}

	topic, ok := blogTopic(body)
	if !ok {
		entry.Error("blogtopic is required")
		return errorResponse(http.StatusBadRequest, "blogtopic is required")
	}

	blog, err := h.generator.Generate(ctx, topic)
	if err != nil || blog == "" {
		entry.WithField("blogtopic", topic).Error("Failed to generate blog")
		return errorResponse(http.StatusInternalServerError, "Failed to generate blog")
	}

	key := h.storageKey(topic)
	if err := h.store.Store(ctx, key, blog); err != nil {
		entry.WithField("s3_key", key).Error("Failed to save blog to S3")
		return errorResponse(http.StatusInternalServerError, "Failed to save blog to S3")
	}

	entry.WithField("s3_key", key).Info("Blog generated successfully")
	return Response{
		StatusCode: http.StatusOK,
		Body:       encodeBody(successBody{Message: "Blog generated successfully", S3Key: key}),
	}
}

func (h *Handler) storageKey(topic string) string {
	name := fmt.Sprintf("%s-%s.txt", topic, h.now().Format(timestampLayout))
	if h.keyPrefix == "" {
		return name
	}
	return h.keyPrefix + "/" + name
}
