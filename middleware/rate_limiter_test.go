package middleware

import (
	"testing"
	"time"
)

func TestTokenBucketBurstThenDeny(t *testing.T) {
	bucket := NewTokenBucket(1, 3)

	for i := 0; i < 3; i++ {
		if !bucket.Allow() {
			t.Fatalf("request %d within burst must be allowed", i+1)
		}
	}
	if bucket.Allow() {
		t.Error("request beyond burst must be denied")
	}
}

func TestTokenBucketRefills(t *testing.T) {
	bucket := NewTokenBucket(100, 1)

	if !bucket.Allow() {
		t.Fatal("first request must be allowed")
	}
	if bucket.Allow() {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(20 * time.Millisecond)
	if !bucket.Allow() {
		t.Error("bucket should have refilled")
	}
}
