package pds

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bluesky-social/indigo/atproto/syntax"
	"github.com/bluesky-social/indigo/xrpc"

	"spores/internal/lexicon"
)

// DefaultHost is the public AppView endpoint, which serves getRecord
// for any repo without authentication.
const DefaultHost = "https://public.api.bsky.app"

// Client fetches records over XRPC. It decodes record values as plain
// maps so lexicons unknown to any generated code still come through.
type Client struct {
	xrpcClient *xrpc.Client
}

// NewClient creates a record-fetching client against the given host;
// an empty host selects DefaultHost.
func NewClient(host string) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		xrpcClient: &xrpc.Client{Host: host},
	}
}

// GetRecord fetches the record addressed by an at:// URI.
func (c *Client) GetRecord(ctx context.Context, atURI string) (*lexicon.Record, error) {
	uri, err := syntax.ParseATURI(atURI)
	if err != nil {
		return nil, fmt.Errorf("invalid at-uri %q: %w", atURI, err)
	}

	params := map[string]interface{}{
		"repo":       uri.Authority().String(),
		"collection": uri.Collection().String(),
		"rkey":       uri.RecordKey().String(),
	}
	var out struct {
		URI   string          `json:"uri"`
		CID   *string         `json:"cid"`
		Value json.RawMessage `json:"value"`
	}
	if err := c.xrpcClient.Do(ctx, xrpc.Query, "", "com.atproto.repo.getRecord", params, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch record: %w", err)
	}

	value := map[string]any{}
	if err := json.Unmarshal(out.Value, &value); err != nil {
		return nil, fmt.Errorf("failed to decode record value: %w", err)
	}

	rec := &lexicon.Record{
		Type:  uri.Collection().String(),
		Value: value,
		URI:   out.URI,
	}
	if out.CID != nil {
		rec.CID = *out.CID
	}
	return rec, nil
}
