package anthropic

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Skill is a Skills API object.
type Skill struct {
	ID            string `json:"id"`
	DisplayTitle  string `json:"display_title"`
	Source        string `json:"source"`
	LatestVersion string `json:"latest_version,omitempty"`
}

// SkillFile is one file of a skill bundle. Path is the in-bundle path,
// which must share a common root directory.
type SkillFile struct {
	Path string
	Data []byte
}

// ListSkills returns all skills from the given source ("custom" or
// "anthropic"), following pagination.
func (c *Client) ListSkills(ctx context.Context, source string) ([]Skill, error) {
	var skills []Skill
	afterID := ""

	for {
		query := url.Values{"source": {source}}
		if afterID != "" {
			query.Set("after_id", afterID)
		}

		req, err := c.newRequest(ctx, http.MethodGet, "/v1/skills?"+query.Encode(), nil, []string{BetaSkills})
		if err != nil {
			return nil, err
		}

		var page struct {
			Data    []Skill `json:"data"`
			HasMore bool    `json:"has_more"`
			LastID  string  `json:"last_id"`
		}
		if err := c.doJSON(req, &page); err != nil {
			return nil, err
		}

		skills = append(skills, page.Data...)
		if !page.HasMore || page.LastID == "" {
			return skills, nil
		}
		afterID = page.LastID
	}
}

// CreateSkill uploads a new custom skill from the given bundle files.
func (c *Client) CreateSkill(ctx context.Context, displayTitle string, files []SkillFile) (*Skill, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("display_title", displayTitle); err != nil {
		return nil, fmt.Errorf("creating skill form: %w", err)
	}
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Path)
		if err != nil {
			return nil, fmt.Errorf("adding %s to skill form: %w", f.Path, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("writing %s to skill form: %w", f.Path, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing skill form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/skills", &buf, []string{BetaSkills})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var skill Skill
	if err := c.doJSON(req, &skill); err != nil {
		return nil, err
	}
	return &skill, nil
}
