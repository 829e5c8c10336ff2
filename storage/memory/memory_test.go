package memory

import (
	"testing"

	"github.com/opengs/tesswrap/storage/testlib"
)

func TestMemoryStorage(t *testing.T) {
	testlib.TestStorage(t, New())
}
