package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/huangsam/tweetstats/core"
	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/huangsam/tweetstats/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// configFor clones the base config and applies the optional per-call overrides.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if m := request.GetString("missing_text", ""); m != "" {
		policy := schema.MissingTextPolicy(m)
		if _, ok := schema.ValidMissingTextPolicies[policy]; !ok {
			return nil, fmt.Errorf("invalid missing_text '%s'. must be empty or legacy", m)
		}
		cfg.MissingText = policy
	}
	return cfg, nil
}

func (h *toolHandler) handleGetCompanyScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle := request.GetString("handle", "")
	if handle == "" {
		return mcp.NewToolResultError("handle is required"), nil
	}
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record, err := core.GetCompanyScores(core.WithSuppressHeader(ctx), cfg, handle)
	if errors.Is(err, schema.ErrUnknownHandle) {
		return mcp.NewToolResultError(fmt.Sprintf("%s is not in the roster", handle)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	enriched := schema.EnrichScores([]schema.ScoreRecord{record})
	jsonData, _ := json.MarshalIndent(enriched[0], "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRosterScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.Verbose = false

	output, _, err := core.GetRosterScores(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	enriched := schema.EnrichScores(output.Records)
	if l := request.GetInt("limit", 0); l > 0 && l < len(enriched) {
		enriched = enriched[:l]
	}
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHistoryStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := schema.HistoryStatus{Backend: string(schema.NoneBackend)}
	if h.mgr != nil {
		if store := h.mgr.GetHistoryStore(); store != nil {
			var err error
			if status, err = store.GetStatus(); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("history status failed: %v", err)), nil
			}
		}
	}
	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
