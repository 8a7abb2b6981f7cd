package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3Options struct {
	Endpoint     string
	PublicURL    string
	Region       string
	Bucket       string
	Folder       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// s3API is the subset of *s3.Client the host uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Host stores images in an S3-compatible bucket under
// <folder>/<assetID><ext> and serves them from PublicURL.
type S3Host struct {
	client    s3API
	bucket    string
	folder    string
	publicURL string
}

func NewS3Host(ctx context.Context, opts S3Options) (*S3Host, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return newS3Host(client, opts), nil
}

func newS3Host(client s3API, opts S3Options) *S3Host {
	return &S3Host{
		client:    client,
		bucket:    opts.Bucket,
		folder:    strings.Trim(opts.Folder, "/"),
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
	}
}

func (h *S3Host) key(name string) string {
	if h.folder == "" {
		return name
	}
	return h.folder + "/" + name
}

func (h *S3Host) Upload(ctx context.Context, asset Asset, body io.Reader) (string, error) {
	objectKey := h.key(asset.ID + asset.Ext)

	_, err := h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(asset.ContentType),
		ContentLength: aws.Int64(asset.Size),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectKey, err)
	}

	return h.publicURL + "/" + objectKey, nil
}

// Destroy removes every object stored for the asset id, whatever its
// extension.
func (h *S3Host) Destroy(ctx context.Context, assetID string) error {
	prefix := h.key(assetID)

	out, err := h.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(h.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return fmt.Errorf("list objects %s: %w", prefix, err)
	}

	var objects []types.ObjectIdentifier
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		if key == prefix || strings.HasPrefix(key, prefix+".") {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}
	}

	if len(objects) == 0 {
		return ErrAssetNotFound
	}

	_, err = h.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(h.bucket),
		Delete: &types.Delete{Objects: objects},
	})
	if err != nil {
		return fmt.Errorf("delete objects %s: %w", prefix, err)
	}

	return nil
}
