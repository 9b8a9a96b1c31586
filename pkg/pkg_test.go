package pkg

import (
	"regexp"
	"testing"
)

func TestName(t *testing.T) {
	expected := "caption"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestDescription(t *testing.T) {
	if Description == "" {
		t.Error("Description is empty")
	}
}

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

	if v := Version(); !semver.MatchString(v) {
		t.Errorf("Version() = %q, not a semantic version", v)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("no authors")
	}

	for _, a := range Author {
		if a.Name == "" || a.Email == "" {
			t.Errorf("incomplete author %+v", a)
		}
	}
}
