// Package story talks to OpenAI-compatible chat and image endpoints to add a
// life story and an avatar to a generated persona.
package story

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/zhpersona/internal/platform/timeouts"
)

const (
	// DefaultChatURL is the chat-completion endpoint used when none is set.
	DefaultChatURL = "https://api.deepseek.com/chat/completions"
	// DefaultModel is the chat model used when none is set.
	DefaultModel = "deepseek-chat"
	// DefaultImageURL is the image generation endpoint used when none is set.
	DefaultImageURL = "https://api.siliconflow.cn/v1/images/generations"
	// DefaultImageModel is the image model used when none is set.
	DefaultImageModel = "black-forest-labs/FLUX.1-schnell"
	// ImageSize is the requested avatar resolution.
	ImageSize = "1024x1024"
	// Temperature keeps the narrative close to the supplied facts.
	Temperature = 0.4
)

// ErrNoAPIKey reports a call attempted without credentials.
var ErrNoAPIKey = errors.New("api key is required")

const systemPrompt = "你是一个极其严格的虚拟人物画像生成引擎的后台节点。请基于用户上传的核心设定字典（JSON形式），" +
	"为该人物生成一段符合社会发展客观规律的人生经历/故事（不多于200字）。" +
	"绝对规则：" +
	"1. 绝不允许编造不存在的学校、公司、或者地理位置（例如不存在的街道）。" +
	"2. 不要出现时空错乱。" +
	"3. 户籍地必须和人生早期轨迹或籍贯吻合。如果有主手机号（primary_phone）和所在地，必须体现出他在该地生活过。" +
	"如果有副手机号（secondary_phone）和工作地，必须让该地成为他人生的重要轨迹（如读大学或当前长期工作）。" +
	"4. 从故事中提取一段稳定的英文图像 Prompt，描述其外貌风格（符合年龄和职业，不带复杂背景）。" +
	"5. 返回纯 JSON 格式，包含且仅包含两个字段：'life_story' (字符串), 'image_prompt' (字符串)。"

// Config configures both collaborators.
type Config struct {
	APIKey       string
	ChatURL      string
	Model        string
	ImageAPIKey  string
	ImageURL     string
	ImageModel   string
	StoryTimeout time.Duration
	ImageTimeout time.Duration
	HTTPClient   *http.Client
}

// Story is the narrative returned by the chat collaborator.
type Story struct {
	LifeStory   string `json:"life_story"`
	ImagePrompt string `json:"image_prompt"`
}

// Client calls the story and image endpoints.
type Client struct {
	cfg Config
}

// New builds a client, filling unset endpoints, models and timeouts.
func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.ChatURL) == "" {
		cfg.ChatURL = DefaultChatURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if strings.TrimSpace(cfg.ImageURL) == "" {
		cfg.ImageURL = DefaultImageURL
	}
	if strings.TrimSpace(cfg.ImageModel) == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.StoryTimeout <= 0 {
		cfg.StoryTimeout = timeouts.AIStory
	}
	if cfg.ImageTimeout <= 0 {
		cfg.ImageTimeout = timeouts.AIImage
	}
	return &Client{cfg: cfg}
}

// CanIllustrate reports whether an image key is configured.
func (c *Client) CanIllustrate() bool {
	return strings.TrimSpace(c.cfg.ImageAPIKey) != ""
}

// Story asks the chat endpoint for a life story about persona, which is sent
// as its JSON encoding.
func (c *Client) Story(ctx context.Context, persona any) (Story, error) {
	apiKey := strings.TrimSpace(c.cfg.APIKey)
	if apiKey == "" {
		return Story{}, ErrNoAPIKey
	}
	facts, err := json.Marshal(persona)
	if err != nil {
		return Story{}, fmt.Errorf("marshal persona: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.StoryTimeout)
	defer cancel()

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	err = c.post(ctx, c.cfg.ChatURL, apiKey, map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": string(facts)},
		},
		"temperature":     Temperature,
		"response_format": map[string]string{"type": "json_object"},
	}, &payload)
	if err != nil {
		return Story{}, fmt.Errorf("story request: %w", err)
	}
	if len(payload.Choices) == 0 {
		return Story{}, fmt.Errorf("story response has no choices")
	}
	return ParseContent(payload.Choices[0].Message.Content)
}

// Avatar asks the image endpoint to render prompt and returns the image URL.
func (c *Client) Avatar(ctx context.Context, prompt string) (string, error) {
	apiKey := strings.TrimSpace(c.cfg.ImageAPIKey)
	if apiKey == "" {
		return "", ErrNoAPIKey
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("image prompt is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ImageTimeout)
	defer cancel()

	type image struct {
		URL string `json:"url"`
	}
	var payload struct {
		Images []image `json:"images"`
		Data   []image `json:"data"`
	}
	err := c.post(ctx, c.cfg.ImageURL, apiKey, map[string]any{
		"model":      c.cfg.ImageModel,
		"prompt":     prompt,
		"image_size": ImageSize,
	}, &payload)
	if err != nil {
		return "", fmt.Errorf("image request: %w", err)
	}
	switch {
	case len(payload.Images) > 0 && payload.Images[0].URL != "":
		return payload.Images[0].URL, nil
	case len(payload.Data) > 0 && payload.Data[0].URL != "":
		return payload.Data[0].URL, nil
	}
	return "", fmt.Errorf("image response has no url")
}

// ParseContent decodes the model's message content, tolerating a markdown
// code fence around the JSON object.
func ParseContent(content string) (Story, error) {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	var s Story
	if err := json.Unmarshal([]byte(content), &s); err != nil {
		return Story{}, fmt.Errorf("decode story content: %w", err)
	}
	if strings.TrimSpace(s.LifeStory) == "" {
		return Story{}, fmt.Errorf("story content has no life_story")
	}
	return s, nil
}

func (c *Client) post(ctx context.Context, url, apiKey string, body any, out any) error {
	requestBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return fmt.Errorf("read error body: %w", err)
		}
		return fmt.Errorf("request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
