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

// Package fakes3 keeps S3 objects in memory for importer tests.
package fakes3

import (
	"bytes"
	"context"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hotelfo/frontdesk/importer"
	"io"
	"slices"
	"strings"
	"sync"
)

type S3Funcs struct {
	mu      sync.Mutex
	objects map[BucketAndKey][]byte
	// PageSize limits the keys per listing page, to exercise pagination.
	PageSize int
}

type BucketAndKey struct {
	Bucket string
	Key    string
}

func NewS3Funcs() *S3Funcs {
	return &S3Funcs{
		objects:  make(map[BucketAndKey][]byte),
		PageSize: 1000,
	}
}

func (s *S3Funcs) Put(bucket, key string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[BucketAndKey{bucket, key}] = slices.Clone(body)
}

func (s *S3Funcs) ListObjectsV2(
	_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for bk := range s.objects {
		if bk.Bucket == aws.ToString(params.Bucket) && strings.HasPrefix(bk.Key, aws.ToString(params.Prefix)) {
			keys = append(keys, bk.Key)
		}
	}
	slices.Sort(keys)
	// the continuation token is the last key of the previous page
	after := aws.ToString(params.ContinuationToken)
	start, _ := slices.BinarySearch(keys, after)
	if after != "" && start < len(keys) && keys[start] == after {
		start++
	}
	end := min(start+s.PageSize, len(keys))
	out := &s3.ListObjectsV2Output{}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[end-1])
	}
	return out, nil
}

func (s *S3Funcs) GetObject(
	_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[BucketAndKey{aws.ToString(params.Bucket), aws.ToString(params.Key)}]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(obj)),
	}, nil
}

// force the fake to implement the interface.
var _ importer.S3Funcs = (*S3Funcs)(nil)
