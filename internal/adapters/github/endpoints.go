package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Repo fetches owner/name; found is false when GitHub has no such repository
func (c *Client) Repo(ctx context.Context, owner, name string) (Repo, bool, error) {
	var out Repo
	found, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(name)), &out)
	return out, found, err
}

// Commit resolves ref (sha, branch or tag) in owner/name; found is false when it does not resolve
func (c *Client) Commit(ctx context.Context, owner, name, ref string) (Commit, bool, error) {
	var out Commit
	path := fmt.Sprintf("/repos/%s/%s/commits/%s", url.PathEscape(owner), url.PathEscape(name), url.PathEscape(ref))
	found, err := c.get(ctx, path, &out)
	return out, found, err
}

func (c *Client) get(ctx context.Context, path string, dst any) (bool, error) {
	resp, err := c.Do(ctx, path)
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("github close body failed")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("github decode %s: %w", path, err)
	}
	return true, nil
}
