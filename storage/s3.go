package storage

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader issues presigned PUT URLs for direct browser uploads of product
// images.
type Uploader struct {
	presigner *s3.PresignClient
	bucket    string
	region    string
}

func NewUploader(ctx context.Context, region, bucket string) (*Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &Uploader{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		region:    region,
	}, nil
}

// PresignPut generates a presigned PUT URL for the given object key, plus the
// public URL the object will be reachable at once uploaded.
func (u *Uploader) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (uploadURL, publicURL string, err error) {
	input := &s3.PutObjectInput{
		Bucket:      sdkaws.String(u.bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}

	presigned, err := u.presigner.PresignPutObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to presign put object: %w", err)
	}

	publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
	return presigned.URL, publicURL, nil
}
