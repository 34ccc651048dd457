package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Sternrassler/github-user-summary/internal/testutil"
	"github.com/Sternrassler/github-user-summary/pkg/service"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupMock(t *testing.T) *testutil.MockGitHub {
	t.Helper()

	mock := testutil.NewMockGitHub()
	t.Cleanup(mock.Close)
	mock.SetUser("octocat", testutil.NewJSONResponse(testutil.UserJSON("octocat", "The Octocat")))
	mock.SetRepositoryPages("octocat", "["+testutil.RepoJSON("octocat", "hello-world")+"]")

	t.Setenv("GITHUB_API_URL", mock.URL())
	t.Setenv("LOG_LEVEL", "error")
	return mock
}

func TestGet_Table(t *testing.T) {
	setupMock(t)

	out, err := execute(t, "get", "OctoCat")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	for _, want := range []string{"User Summary: octocat", "The Octocat", "San Francisco", "hello-world"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGet_JSON(t *testing.T) {
	setupMock(t)

	out, err := execute(t, "get", "octocat", "--json")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if body["userName"] != "octocat" {
		t.Errorf("userName = %v, want octocat", body["userName"])
	}
}

func TestGet_NotFound(t *testing.T) {
	setupMock(t)

	_, err := execute(t, "get", "ghost")
	if !service.IsNotFound(err) {
		t.Errorf("get ghost = %v, want NotFoundError", err)
	}
}

func TestGet_InvalidUsername(t *testing.T) {
	for _, username := range []string{"ghost/../octocat", "..", "-octocat", "octo_cat"} {
		t.Run(username, func(t *testing.T) {
			mock := setupMock(t)

			out, err := execute(t, "get", username, "--json")
			if !errors.Is(err, errInvalidUsername) {
				t.Errorf("get %q = %v, want errInvalidUsername", username, err)
			}
			if out != "" {
				t.Errorf("output = %q, want none", out)
			}
			if n := mock.RequestCount(); n != 0 {
				t.Errorf("upstream requests = %d, want 0", n)
			}
		})
	}
}

func TestGet_RequiresUsername(t *testing.T) {
	if _, err := execute(t, "get"); err == nil {
		t.Error("get without a username should fail")
	}
}

func TestDeref(t *testing.T) {
	s := "Berlin"
	blank := "  "

	tests := []struct {
		name string
		in   *string
		want string
	}{
		{"nil", nil, "-"},
		{"blank", &blank, "-"},
		{"value", &s, "Berlin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deref(tt.in); got != tt.want {
				t.Errorf("deref() = %q, want %q", got, tt.want)
			}
		})
	}
}
