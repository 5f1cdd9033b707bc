package correlator

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestCache(t *testing.T, size int) *Cache {
	t.Helper()
	c, err := New(size)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return c
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d): expected error, got nil", size)
		}
	}
}

func TestRecordLookup(t *testing.T) {
	c := newTestCache(t, DefaultSize)
	c.Record("g1", "cap")

	got, ok := c.Lookup("g1")
	if !ok {
		t.Fatal("expected g1 to be present")
	}
	if diff := cmp.Diff("cap", got); diff != "" {
		t.Errorf("Lookup(g1) mismatch (-want +got):\n%s", diff)
	}

	if _, ok := c.Lookup("unknown"); ok {
		t.Error("expected unknown group to be absent")
	}
}

func TestRecordOverwrites(t *testing.T) {
	c := newTestCache(t, DefaultSize)
	c.Record("g1", "old")
	c.Record("g1", "new")

	got, _ := c.Lookup("g1")
	if diff := cmp.Diff("new", got); diff != "" {
		t.Errorf("Lookup(g1) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(1, c.Len()); diff != "" {
		t.Errorf("Len() mismatch (-want +got):\n%s", diff)
	}
}

func TestEvictsLeastRecentlyRecorded(t *testing.T) {
	const size = 3
	c := newTestCache(t, size)
	for i := 0; i < size+1; i++ {
		c.Record(fmt.Sprintf("g%d", i), fmt.Sprintf("cap%d", i))
	}

	if _, ok := c.Lookup("g0"); ok {
		t.Error("expected g0 to be evicted")
	}
	for i := 1; i <= size; i++ {
		if _, ok := c.Lookup(fmt.Sprintf("g%d", i)); !ok {
			t.Errorf("expected g%d to be present", i)
		}
	}
	if diff := cmp.Diff(size, c.Len()); diff != "" {
		t.Errorf("Len() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordRefreshesRecency(t *testing.T) {
	c := newTestCache(t, 2)
	c.Record("g1", "a")
	c.Record("g2", "b")
	c.Record("g1", "a")
	c.Record("g3", "c")

	if _, ok := c.Lookup("g2"); ok {
		t.Error("expected g2 to be evicted")
	}
	if _, ok := c.Lookup("g1"); !ok {
		t.Error("expected g1 to survive after being re-recorded")
	}
}

func TestLookupDoesNotRefreshRecency(t *testing.T) {
	c := newTestCache(t, 2)
	c.Record("g1", "a")
	c.Record("g2", "b")
	if _, ok := c.Lookup("g1"); !ok {
		t.Fatal("expected g1 to be present")
	}
	c.Record("g3", "c")

	if _, ok := c.Lookup("g1"); ok {
		t.Error("expected g1 to be evicted despite the lookup")
	}
	if _, ok := c.Lookup("g2"); !ok {
		t.Error("expected g2 to be present")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		seed     map[string]string
		groupID  string
		caption  string
		want     string
		wantOK   bool
		recorded map[string]string
	}{
		{
			name:     "group with caption is recorded",
			groupID:  "g42",
			caption:  "#trip",
			want:     "#trip",
			wantOK:   true,
			recorded: map[string]string{"g42": "#trip"},
		},
		{
			name:     "group without caption borrows",
			seed:     map[string]string{"g42": "#trip"},
			groupID:  "g42",
			want:     "#trip",
			wantOK:   true,
			recorded: map[string]string{"g42": "#trip"},
		},
		{
			name:     "group without caption and nothing recorded",
			groupID:  "g42",
			recorded: map[string]string{},
		},
		{
			name:     "caption without group is not recorded",
			caption:  "hello",
			want:     "hello",
			wantOK:   true,
			recorded: map[string]string{},
		},
		{
			name:     "neither",
			recorded: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCache(t, DefaultSize)
			for k, v := range tt.seed {
				c.Record(k, v)
			}

			got, ok := c.Resolve(tt.groupID, tt.caption)
			if diff := cmp.Diff(tt.wantOK, ok); diff != "" {
				t.Errorf("Resolve() ok mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() caption mismatch (-want +got):\n%s", diff)
			}

			recorded := map[string]string{}
			for _, k := range c.groups.Keys() {
				v, _ := c.Lookup(k)
				recorded[k] = v
			}
			if diff := cmp.Diff(tt.recorded, recorded); diff != "" {
				t.Errorf("cache contents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
