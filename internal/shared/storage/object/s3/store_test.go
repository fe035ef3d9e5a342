package s3

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "resume-1.pdf", want: "resume-1.pdf"},
		{name: "simple prefix", prefix: "root", key: "cover-letter-Acme-1.pdf", want: "root/cover-letter-Acme-1.pdf"},
		{name: "prefix trailing slash", prefix: "root/", key: "cover-letter-Acme-1.pdf", want: "root/cover-letter-Acme-1.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/cover-letter-Acme-1.pdf", want: "root/cover-letter-Acme-1.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "cover-letter-Acme-1.pdf", want: "root/sub/cover-letter-Acme-1.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestLocationIncludesBucketAndPrefix(t *testing.T) {
	s := &Store{bucket: "letters", prefix: normalizePrefix(" /uploads/ ")}
	if got := s.Location("resume-1-123456789.pdf"); got != "s3://letters/uploads/resume-1-123456789.pdf" {
		t.Fatalf("unexpected location: %s", got)
	}
}

func TestPresignGetSignsPrefixedKey(t *testing.T) {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")),
	}
	store := NewWithClient(s3.NewFromConfig(cfg), "letters", "uploads", "")

	raw, err := store.PresignGet(context.Background(), "cover-letter-Acme-1.pdf", 5*time.Minute)
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if !strings.HasSuffix(parsed.Path, "/uploads/cover-letter-Acme-1.pdf") {
		t.Fatalf("unexpected path: %s", parsed.Path)
	}
	if got := parsed.Query().Get("X-Amz-Expires"); got != "300" {
		t.Fatalf("expected 300s expiry, got %q", got)
	}
	if !strings.Contains(parsed.Query().Get("X-Amz-SignedHeaders"), "host") {
		t.Fatalf("expected host in signed headers: %s", parsed.RawQuery)
	}
}
