package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type apiError struct {
	code string
}

func (e *apiError) Error() string                 { return e.code }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

// mockS3 is an in-memory bucket.
type mockS3 struct {
	mu          sync.Mutex
	objects     map[string][]byte
	contentType map[string]string

	putErr error
	getErr error
}

func newMockS3() *mockS3 {
	return &mockS3{objects: map[string][]byte{}, contentType: map[string]string{}}
}

func (m *mockS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[*in.Key]
	if !ok {
		return nil, &apiError{code: "NoSuchKey"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *mockS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[*in.Key] = data
	if in.ContentType != nil {
		m.contentType[*in.Key] = *in.ContentType
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (m *mockS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[*in.Key]; !ok {
		return nil, &apiError{code: "NotFound"}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestS3KeyAndContentType(t *testing.T) {
	mock := newMockS3()
	s := NewS3(mock, "bucket", "/studio/tmp/")
	put(t, s, "speech/x.mp3", "ID3")

	if _, ok := mock.objects["studio/tmp/speech/x.mp3"]; !ok {
		t.Fatalf("objects = %v, want prefixed key", mock.objects)
	}
	if ct := mock.contentType["studio/tmp/speech/x.mp3"]; ct != "audio/mpeg" {
		t.Errorf("ContentType = %q, want %q", ct, "audio/mpeg")
	}
}

func TestS3UploadError(t *testing.T) {
	mock := newMockS3()
	mock.putErr = errors.New("upload failed")
	s := NewS3(mock, "bucket", "")

	w, err := s.Create(context.Background(), "obj")
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(w, "data")
	if err := w.Close(); err == nil || err.Error() != "upload failed" {
		t.Fatalf("Close = %v, want upload failed", err)
	}
}

func TestS3OpenOtherError(t *testing.T) {
	mock := newMockS3()
	mock.getErr = errors.New("network timeout")
	s := NewS3(mock, "bucket", "")

	_, err := s.Open(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "network timeout") {
		t.Fatalf("err = %v, want network timeout", err)
	}
}

func TestNewS3FromConfigRequiresBucket(t *testing.T) {
	if _, err := NewS3FromConfig(S3Config{}); err == nil {
		t.Fatal("expected error for empty bucket")
	}
	s, err := NewS3FromConfig(S3Config{Bucket: "b", Endpoint: "http://127.0.0.1:9000"})
	if err != nil {
		t.Fatal(err)
	}
	if s.bucket != "b" {
		t.Errorf("bucket = %q, want %q", s.bucket, "b")
	}
}

func TestIsS3NotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"NoSuchKey", &apiError{code: "NoSuchKey"}, true},
		{"NotFound", &apiError{code: "NotFound"}, true},
		{"AccessDenied", &apiError{code: "AccessDenied"}, false},
		{"plain", errors.New("timeout"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isS3NotFound(tt.err); got != tt.want {
				t.Fatalf("isS3NotFound(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
