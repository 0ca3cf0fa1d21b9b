package story

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func clientWith(fn roundTripFunc) *http.Client {
	return &http.Client{Transport: fn}
}

func TestNewDefaults(t *testing.T) {
	c := New(Config{})
	if c.cfg.HTTPClient == nil {
		t.Fatal("expected non-nil HTTP client")
	}
	if c.cfg.ChatURL != DefaultChatURL || c.cfg.Model != DefaultModel {
		t.Fatalf("chat defaults = %q %q", c.cfg.ChatURL, c.cfg.Model)
	}
	if c.cfg.ImageURL != DefaultImageURL || c.cfg.ImageModel != DefaultImageModel {
		t.Fatalf("image defaults = %q %q", c.cfg.ImageURL, c.cfg.ImageModel)
	}
	if c.cfg.StoryTimeout <= 0 || c.cfg.ImageTimeout <= 0 {
		t.Fatal("expected default timeouts")
	}
	if c.CanIllustrate() {
		t.Fatal("CanIllustrate without key")
	}
}

func TestStoryRequiresAPIKey(t *testing.T) {
	c := New(Config{HTTPClient: clientWith(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("round trip should not execute without key: %v", req.URL)
		return nil, nil
	})})
	if _, err := c.Story(context.Background(), map[string]string{"name": "张伟"}); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
	if _, err := c.Avatar(context.Background(), "portrait"); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestStorySendsChatRequest(t *testing.T) {
	var got map[string]any
	c := New(Config{
		APIKey:  "sk-1",
		ChatURL: "https://chat.example.com/v1",
		HTTPClient: clientWith(func(req *http.Request) (*http.Response, error) {
			if req.URL.String() != "https://chat.example.com/v1" {
				t.Fatalf("url = %s", req.URL)
			}
			if auth := req.Header.Get("Authorization"); auth != "Bearer sk-1" {
				t.Fatalf("authorization = %q", auth)
			}
			if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			return response(http.StatusOK, `{"choices":[{"message":{"content":"`+"```json"+`{\"life_story\":\"生于广州\",\"image_prompt\":\"a portrait\"}`+"```"+`"}}]}`), nil
		}),
	})

	s, err := c.Story(context.Background(), map[string]string{"name": "张伟"})
	if err != nil {
		t.Fatalf("story: %v", err)
	}
	if s.LifeStory != "生于广州" || s.ImagePrompt != "a portrait" {
		t.Fatalf("story = %+v", s)
	}
	if got["model"] != DefaultModel {
		t.Fatalf("model = %v", got["model"])
	}
	if got["temperature"] != Temperature {
		t.Fatalf("temperature = %v", got["temperature"])
	}
	format, _ := got["response_format"].(map[string]any)
	if format["type"] != "json_object" {
		t.Fatalf("response_format = %v", got["response_format"])
	}
	messages, _ := got["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("messages = %v", got["messages"])
	}
	user, _ := messages[1].(map[string]any)
	if user["role"] != "user" || !strings.Contains(user["content"].(string), "张伟") {
		t.Fatalf("user message = %v", user)
	}
}

func TestStoryReportsStatusErrors(t *testing.T) {
	c := New(Config{
		APIKey: "sk-1",
		HTTPClient: clientWith(func(*http.Request) (*http.Response, error) {
			return response(http.StatusUnauthorized, "bad key"), nil
		}),
	})
	_, err := c.Story(context.Background(), map[string]string{})
	if err == nil || !strings.Contains(err.Error(), "status 401") {
		t.Fatalf("err = %v, want status 401", err)
	}
}

func TestStoryRejectsMalformedContent(t *testing.T) {
	c := New(Config{
		APIKey: "sk-1",
		HTTPClient: clientWith(func(*http.Request) (*http.Response, error) {
			return response(http.StatusOK, `{"choices":[{"message":{"content":"not json"}}]}`), nil
		}),
	})
	if _, err := c.Story(context.Background(), map[string]string{}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAvatarReadsEitherShape(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "images", body: `{"images":[{"url":"https://img.example.com/a.png"}]}`, want: "https://img.example.com/a.png"},
		{name: "data", body: `{"data":[{"url":"https://img.example.com/b.png"}]}`, want: "https://img.example.com/b.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			c := New(Config{
				ImageAPIKey: "sf-1",
				HTTPClient: clientWith(func(req *http.Request) (*http.Response, error) {
					if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
						t.Fatalf("decode request: %v", err)
					}
					return response(http.StatusOK, tt.body), nil
				}),
			})
			url, err := c.Avatar(context.Background(), "a portrait")
			if err != nil {
				t.Fatalf("avatar: %v", err)
			}
			if url != tt.want {
				t.Fatalf("url = %q, want %q", url, tt.want)
			}
			if got["image_size"] != ImageSize || got["model"] != DefaultImageModel || got["prompt"] != "a portrait" {
				t.Fatalf("request = %v", got)
			}
		})
	}
}

func TestAvatarWithoutURL(t *testing.T) {
	c := New(Config{
		ImageAPIKey: "sf-1",
		HTTPClient: clientWith(func(*http.Request) (*http.Response, error) {
			return response(http.StatusOK, `{"images":[]}`), nil
		}),
	})
	if _, err := c.Avatar(context.Background(), "a portrait"); err == nil {
		t.Fatal("expected missing url error")
	}
}

func TestParseContent(t *testing.T) {
	s, err := ParseContent("  {\"life_story\":\"x\",\"image_prompt\":\"y\"}  ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.LifeStory != "x" || s.ImagePrompt != "y" {
		t.Fatalf("story = %+v", s)
	}
	if _, err := ParseContent(`{"image_prompt":"y"}`); err == nil {
		t.Fatal("expected missing life_story error")
	}
}
