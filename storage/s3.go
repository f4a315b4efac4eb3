package storage

import (
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/model"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Objects above this size go through the multipart upload manager
const minMultipartSize = 12 << 20

// S3 stores blobs in an S3 bucket under the same derived keys as the
// local backend.
type S3 struct {
	c      *s3.Client
	bucket *string
}

func NewS3() (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("aws.access_key_id"),
			viper.GetString("aws.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = viper.GetString("aws.region")
	})

	return &S3{
		c:      client,
		bucket: aws.String(viper.GetString("aws.bucket")),
	}, nil
}

func (b *S3) Init(ctx context.Context) error {
	_, err := b.c.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: b.bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return fmt.Errorf("bucket '%s' does not exist", *b.bucket)
		}

		return fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return nil
}

func (b *S3) SaveFile(ctx context.Context, f *model.File, data []byte) error {
	if data == nil {
		return apperr.New(apperr.Validation)
	}

	input := &s3.PutObjectInput{
		Bucket:        b.bucket,
		Key:           aws.String(f.BlobKey()),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(f.Mime),
	}

	var err error
	if int64(len(data)) > minMultipartSize {
		uploader := manager.NewUploader(b.c, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 6 << 20
		})

		_, err = uploader.Upload(ctx, input)
	} else {
		_, err = b.c.PutObject(ctx, input)
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, err)
	}

	zap.L().Debug("Uploaded object to S3", zap.String("key", f.BlobKey()))
	return nil
}

func (b *S3) LoadFile(ctx context.Context, f *model.File) ([]byte, error) {
	out, err := b.c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: b.bucket,
		Key:    aws.String(f.BlobKey()),
	})
	if err != nil {
		if isMissingKey(err) {
			return nil, apperr.Wrap(apperr.FileNotFound, err)
		}

		return nil, apperr.Wrap(apperr.Internal, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err)
	}

	return data, nil
}

func (b *S3) DeleteFile(ctx context.Context, f *model.File) error {
	// S3's delete is a silent no-op on missing keys, but absence has to
	// be reported. Head first to distinguish the two.
	_, err := b.c.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: b.bucket,
		Key:    aws.String(f.BlobKey()),
	})
	if err != nil {
		if isMissingKey(err) {
			return apperr.Wrap(apperr.FileNotFound, err)
		}

		return apperr.Wrap(apperr.Internal, err)
	}

	_, err = b.c.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: b.bucket,
		Key:    aws.String(f.BlobKey()),
	})
	if err != nil {
		return apperr.Wrap(apperr.Internal, err)
	}

	return nil
}

func isMissingKey(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}

	return false
}
