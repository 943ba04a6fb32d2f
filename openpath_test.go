package cytodiff

import (
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
)

func TestWrapPathErrKeepsChain(t *testing.T) {
	err := wrapPathErr("gs://bucket/results/cluster_condition.csv", storage.ErrObjectNotExist)

	if !errors.Is(err, storage.ErrObjectNotExist) {
		t.Error("object-not-exist no longer detectable after wrapping")
	}
	if !strings.Contains(err.Error(), "gs://bucket/results/cluster_condition.csv") {
		t.Error("wrapped error lost the path:", err)
	}
}
