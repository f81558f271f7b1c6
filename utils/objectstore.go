// utils/objectstore.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var objectStoreClient *s3.Client
var objectStoreBucket string

// InitObjectStore configures the S3-compatible client (Cloudflare R2) used
// for session export snapshots. Export is optional: when R2_BUCKET_NAME is
// unset the store stays disabled and this is a no-op.
func InitObjectStore() error {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	objectStoreBucket = os.Getenv("R2_BUCKET_NAME")
	if objectStoreBucket == "" {
		return nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load object store config: %w", err)
	}

	objectStoreClient = s3.NewFromConfig(cfg)
	return nil
}

// ObjectStoreEnabled reports whether InitObjectStore configured a bucket.
func ObjectStoreEnabled() bool {
	return objectStoreClient != nil
}

// UploadJSON puts a JSON document into the export bucket under key.
func UploadJSON(ctx context.Context, key string, body []byte) error {
	if objectStoreClient == nil {
		return fmt.Errorf("object store not configured")
	}
	_, err := objectStoreClient.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(objectStoreBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
