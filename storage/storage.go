package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"blogwriter/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

const contentType = "text/plain; charset=utf-8"

// PutObjectAPI is the subset of the S3 client used here.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Writer stores generated blogs in a single bucket.
type Writer struct {
	api    PutObjectAPI
	bucket string
}

// NewWriter creates a Writer for bucket.
func NewWriter(api PutObjectAPI, bucket string) *Writer {
	return &Writer{api: api, bucket: bucket}
}

// NewS3API builds the S3 client with SDK default retries. An empty region keeps
// the one resolved from the environment.
func NewS3API(cfg aws.Config, region string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if region != "" {
			o.Region = region
		}
	})
}

// Store writes body at key. Failures are logged and returned.
func (w *Writer) Store(ctx context.Context, key, body string) error {
	_, err := w.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Errorf("S3 Error: %v", err)
		return fmt.Errorf("put s3://%s/%s: %w", w.bucket, key, err)
	}
	log.Infof("Blog successfully saved to S3: %s", key)
	return nil
}
