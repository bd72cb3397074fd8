//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package importer

import (
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/hotelfo/frontdesk/conf"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"time"
)

// Source is somewhere arrivals exports are kept. Names are returned in the
// order they should be imported.
type Source interface {
	List(ctx context.Context) ([]string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewSource builds the source the config asks for. It returns nil for
// ImportSourceNone.
func NewSource(ctx context.Context, cfg conf.Import) (Source, error) {
	switch cfg.Source {
	case conf.ImportSourceLocal:
		return LocalSource{Dir: cfg.LocalDir, Pattern: cfg.FilePattern}, nil
	case conf.ImportSourceS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return &S3Source{
			Client:  client,
			Bucket:  cfg.S3.Bucket,
			Prefix:  cfg.S3.KeyPrefix,
			Pattern: cfg.FilePattern,
		}, nil
	case conf.ImportSourceNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown import source %v", cfg.Source)
	}
}

// LocalSource finds exports anywhere under Dir whose base name matches
// Pattern.
type LocalSource struct {
	Dir     string
	Pattern string
}

func (l LocalSource) List(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(l.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		ok, err := matches(l.Pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("[WalkDir]: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

func (l LocalSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("[os.Open]: %w", err)
	}
	return f, nil
}

func matches(pattern, name string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	ok, err := path.Match(pattern, name)
	if err != nil {
		return false, fmt.Errorf("[path.Match]: %w", err)
	}
	return ok, nil
}

// S3Funcs is the part of the S3 API the importer calls, so that tests can
// supply a fake.
type S3Funcs interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client uses the static keys in cfg if there are any, and otherwise
// the default AWS credential chain.
func NewS3Client(ctx context.Context, cfg conf.S3Import) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("[LoadDefaultConfig]: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// S3Source finds exports under Prefix in Bucket whose base name matches
// Pattern.
type S3Source struct {
	Client  S3Funcs
	Bucket  string
	Prefix  string
	Pattern string
}

func (s *S3Source) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(s.Prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[ListObjectsV2]: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			ok, err := matches(s.Pattern, path.Base(key))
			if err != nil {
				return nil, err
			}
			if ok {
				keys = append(keys, key)
			}
		}
	}
	slices.Sort(keys)
	slog.Debug("Listed import objects in S3", "bucket", s.Bucket, "count", len(keys), "duration", time.Since(start))
	return keys, nil
}

var ErrNoSuchObject = errors.New("no such import object")

func (s *S3Source) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	output, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %v", ErrNoSuchObject, key)
		}
		return nil, fmt.Errorf("[GetObject]: %w", err)
	}
	return output.Body, nil
}
