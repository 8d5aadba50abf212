package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"

	"blogwriter/logging"
	"blogwriter/metrics"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

const (
	contentTypeJSON = "application/json"

	maxGenLen   = 256
	temperature = 0.7
	topP        = 0.9
)

// ErrEmptyGeneration is returned when the model answers without any text.
var ErrEmptyGeneration = errors.New("model returned an empty generation")

// InvokeModelAPI is the subset of the Bedrock runtime client used here.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// LatencyObserver receives the duration of every model call.
type LatencyObserver interface {
	ObserveGeneration(d time.Duration, err error)
}

// Client writes blog posts with a text-generation model.
type Client struct {
	api      InvokeModelAPI
	modelID  string
	observer LatencyObserver
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithObserver reports call latency to o. A nil o keeps the no-op observer.
func WithObserver(o LatencyObserver) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewClient creates a Client invoking modelID through api.
func NewClient(api InvokeModelAPI, modelID string, opts ...Option) *Client {
	c := &Client{
		api:      api,
		modelID:  modelID,
		observer: metrics.Noop{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewBedrockAPI builds the runtime client once per process. Region, read timeout and
// transport retry attempts are fixed here and never changed per call.
func NewBedrockAPI(cfg aws.Config, region string, timeout time.Duration, maxAttempts int) *bedrockruntime.Client {
	httpClient := awshttp.NewBuildableClient().WithTimeout(timeout)
	return bedrockruntime.NewFromConfig(cfg, func(o *bedrockruntime.Options) {
		o.Region = region
		o.RetryMaxAttempts = maxAttempts
		o.HTTPClient = httpClient
	})
}

type request struct {
	Prompt      string  `json:"prompt"`
	MaxGenLen   int     `json:"max_gen_len"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type response struct {
	Generation *string `json:"generation"`
}

// Prompt returns the instruction-formatted prompt for topic.
func Prompt(topic string) string {
	return fmt.Sprintf("<s>[INST]Human: Write a 200-word blog on %s\nAssistant:[/INST]", topic)
}

// Generate asks the model for a blog post on topic. Every failure is logged and
// returned; callers only need to check the error.
func (c *Client) Generate(ctx context.Context, topic string) (string, error) {
	body, err := json.Marshal(request{
		Prompt:      Prompt(topic),
		MaxGenLen:   maxGenLen,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		log.Errorf("Unexpected error in blog generation: %v", err)
		return "", fmt.Errorf("marshal request: %w", err)
	}

	start := c.now()
	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		Body:        body,
		Accept:      aws.String(contentTypeJSON),
		ContentType: aws.String(contentTypeJSON),
	})
	elapsed := c.now().Sub(start)
	c.observer.ObserveGeneration(elapsed, err)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			log.Errorf("Bedrock API error: %s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
		} else {
			log.Errorf("Unexpected error in blog generation: %v", err)
		}
		return "", fmt.Errorf("invoke model %s: %w", c.modelID, err)
	}
	log.Infof("Bedrock API response time: %.2f seconds", elapsed.Seconds())
	log.Infof("Raw Bedrock Response: %s", out.Body)

	blog, err := parseGeneration(out.Body)
	if err != nil {
		log.Errorf("Unexpected error in blog generation: %v", err)
		return "", err
	}
	return blog, nil
}

func parseGeneration(payload []byte) (string, error) {
	var resp response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.Generation == nil {
		return "", errors.New("decode response: missing generation field")
	}
	blog := strings.TrimSpace(*resp.Generation)
	if blog == "" {
		return "", ErrEmptyGeneration
	}
	return blog, nil
}
