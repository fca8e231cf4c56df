package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PresignExpiry bounds how long an upload or download URL stays usable.
const PresignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	timeNow = time.Now
)

// S3Settings locates the S3-compatible bucket holding profile pictures.
type S3Settings struct {
	Region       string
	RootUser     string
	RootPassword string
	Bucket       string
	BaseEndpoint string
}

// PictureStorage hands out presigned URLs so clients talk to object
// storage directly.
type PictureStorage interface {
	PresignUpload(ctx context.Context, accountID string) (key string, url string, err error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

// S3PictureStorage implements PictureStorage on top of aws-sdk-go-v2.
type S3PictureStorage struct {
	settings S3Settings
}

func NewS3PictureStorage(settings S3Settings) *S3PictureStorage {
	return &S3PictureStorage{settings: settings}
}

// PicturePrefix is the object key prefix reserved for one account.
func PicturePrefix(accountID string) string {
	return "pictures/" + accountID + "/"
}

// PictureKey builds a fresh object key under the account's prefix.
func PictureKey(accountID string) string {
	d := timeNow()
	return fmt.Sprintf("%s%d/%02d/%02d/%v", PicturePrefix(accountID), d.Year(), d.Month(), d.Day(), uuid.New())
}

// ownsPictureKey reports whether key lies under the account's prefix.
// Keys with dot segments are refused outright.
func ownsPictureKey(accountID, key string) bool {
	if accountID == "" || !strings.HasPrefix(key, PicturePrefix(accountID)) {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

func (s *S3PictureStorage) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.settings.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.settings.RootUser,
			s.settings.RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.settings.BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (s *S3PictureStorage) PresignUpload(ctx context.Context, accountID string) (string, string, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.settings.Bucket
	key := PictureKey(accountID)

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

func (s *S3PictureStorage) PresignDownload(ctx context.Context, key string) (string, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.settings.Bucket
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
