package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DiskTestSuite struct {
	suite.Suite
	dir  string
	disk *Disk
}

func (s *DiskTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	d, err := NewDisk(filepath.Join(s.dir, "uploads"), "/uploads/")
	s.Require().NoError(err)
	s.disk = d
}

func (s *DiskTestSuite) TestPutWritesFileAndURL() {
	stored, err := s.disk.Put(context.Background(), strings.NewReader("png-bytes"), "sunset.PNG", "image/png")
	s.Require().NoError(err)

	s.True(strings.HasSuffix(stored.Reference, ".png"))
	s.Equal("/uploads/"+stored.Reference, stored.URL)

	data, err := os.ReadFile(filepath.Join(s.disk.Dir(), stored.Reference))
	s.Require().NoError(err)
	s.Equal("png-bytes", string(data))
}

func (s *DiskTestSuite) TestPutLeavesNoTempFiles() {
	_, err := s.disk.Put(context.Background(), strings.NewReader("x"), "a.jpg", "image/jpeg")
	s.Require().NoError(err)

	entries, err := os.ReadDir(s.disk.Dir())
	s.Require().NoError(err)
	s.Len(entries, 1)
	s.False(strings.HasPrefix(entries[0].Name(), ".upload-"))
}

func (s *DiskTestSuite) TestPutCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.disk.Put(ctx, strings.NewReader("x"), "a.jpg", "image/jpeg")
	s.ErrorIs(err, context.Canceled)
}

func (s *DiskTestSuite) TestDeleteRemovesFile() {
	stored, err := s.disk.Put(context.Background(), strings.NewReader("x"), "a.jpg", "")
	s.Require().NoError(err)

	s.Require().NoError(s.disk.Delete(context.Background(), stored.Reference))
	_, err = os.Stat(filepath.Join(s.disk.Dir(), stored.Reference))
	s.True(os.IsNotExist(err))

	s.Error(s.disk.Delete(context.Background(), stored.Reference))
}

func (s *DiskTestSuite) TestDeleteRejectsTraversal() {
	s.ErrorIs(s.disk.Delete(context.Background(), "../config.go"), ErrInvalidReference)
}

func TestDiskTestSuite(t *testing.T) {
	suite.Run(t, new(DiskTestSuite))
}

func TestExtensionFor(t *testing.T) {
	cases := []struct{ filename, contentType, want string }{
		{"a.png", "image/jpeg", ".jpg"},
		{"a.WEBP", "", ".webp"},
		{"noext", "", ".bin"},
		{"weird.tar.gz!", "", ".bin"},
	}
	for _, c := range cases {
		if got := extensionFor(c.filename, c.contentType); got != c.want {
			t.Errorf("extensionFor(%q, %q) = %q, want %q", c.filename, c.contentType, got, c.want)
		}
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	stored, err := m.Put(context.Background(), strings.NewReader("abc"), "a.gif", "image/gif")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !m.Has(stored.Reference) || m.Len() != 1 {
		t.Fatalf("expected blob %q to be stored", stored.Reference)
	}
	if err := m.Delete(context.Background(), stored.Reference); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if m.Has(stored.Reference) {
		t.Error("expected blob to be removed")
	}
	if err := m.Delete(context.Background(), stored.Reference); err == nil {
		t.Error("expected error deleting missing blob")
	}
}

func TestMakeSlug(t *testing.T) {
	cases := map[string]string{
		"Harbor at Dawn (final).JPG": "harbor-at-dawn-final",
		"my_painting.png":            "my-painting",
		"../../etc/passwd":           "passwd",
		"???.png":                    "painting",
		"":                           "painting",
	}
	for in, want := range cases {
		if got := MakeSlug(in); got != want {
			t.Errorf("MakeSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReferenceShape(t *testing.T) {
	ref := newReference("0b5c7a6e-3d4f-4c1e-9a8b-7c6d5e4f3a2b", "Sea View.png", "image/png")
	if ref != "sea-view-0b5c7a6e-3d4f-4c1e-9a8b-7c6d5e4f3a2b.png" {
		t.Errorf("unexpected reference %q", ref)
	}
	if !validRef.MatchString(ref) {
		t.Errorf("reference %q should be accepted by Delete", ref)
	}
}
