package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectPutter is the subset of *s3.Client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SnapshotUploader stores Parquet price-list snapshots in a bucket.
type SnapshotUploader struct {
	client ObjectPutter
	bucket string
}

// NewS3Uploader loads the default AWS credential chain for region.
func NewS3Uploader(ctx context.Context, region, bucket string) (*SnapshotUploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSnapshotUploader(s3.NewFromConfig(cfg), bucket), nil
}

func NewSnapshotUploader(client ObjectPutter, bucket string) *SnapshotUploader {
	return &SnapshotUploader{client: client, bucket: bucket}
}

// SnapshotKey is menu-snapshots/<outlet>/<yyyy>/<mm>/<dd>/<unix-millis>.parquet.
func SnapshotKey(outletID uuid.UUID, at time.Time) string {
	at = at.UTC()
	return path.Join(
		"menu-snapshots",
		outletID.String(),
		at.Format("2006"), at.Format("01"), at.Format("02"),
		fmt.Sprintf("%d.parquet", at.UnixMilli()),
	)
}

// Upload writes the list as Parquet and puts it under SnapshotKey. It returns
// the object key.
func (u *SnapshotUploader) Upload(ctx context.Context, outletID uuid.UUID, list PriceList) (string, error) {
	var buf bytes.Buffer
	if err := WriteParquet(&buf, list); err != nil {
		return "", err
	}

	key := SnapshotKey(outletID, list.At)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/vnd.apache.parquet"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}
