// Package s3store uploads artifacts to an S3-compatible bucket.
package s3store

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port"
)

type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool
}

type Store struct {
	bucket   string
	region   string
	endpoint string
	pathURL  bool
	uploader *s3manager.Uploader
}

func New(cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: S3 bucket is required", domain.ErrConfiguration)
	}
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.PathStyle {
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return &Store{
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		pathURL:  cfg.PathStyle,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

func (s *Store) Put(ctx context.Context, key, localPath, contentType string) (domain.StoredObject, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return domain.StoredObject{}, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return domain.StoredObject{}, fmt.Errorf("stat %s: %w", localPath, err)
	}

	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return domain.StoredObject{}, fmt.Errorf("upload %s to s3: %w", key, err)
	}

	return domain.StoredObject{
		Location: "s3://" + s.bucket + "/" + key,
		URL:      s.objectURL(key),
		Size:     info.Size(),
	}, nil
}

func (s *Store) objectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	switch {
	case s.endpoint != "" && s.pathURL:
		return s.endpoint + "/" + s.bucket + "/" + escaped
	case s.endpoint != "":
		u, err := url.Parse(s.endpoint)
		if err != nil || u.Host == "" {
			return s.endpoint + "/" + s.bucket + "/" + escaped
		}
		return u.Scheme + "://" + s.bucket + "." + u.Host + "/" + escaped
	default:
		return "https://" + s.bucket + ".s3." + s.region + ".amazonaws.com/" + escaped
	}
}

var _ port.ArtifactStore = (*Store)(nil)
