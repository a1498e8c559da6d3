// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the tweetstats MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Tweetstats Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_company_scores ---
	s.AddTool(mcp.NewTool("get_company_scores",
		mcp.WithDescription("Compare the tweeting behavior of one roster company before and after its Series A funding."),
		mcp.WithString("handle", mcp.Description("Twitter handle of the company, as listed in the roster."), mcp.Required()),
		mcp.WithString("missing_text", mcp.Description("How a tweet without text counts toward average length. Defaults to the server setting."), mcp.Enum("empty", "legacy")),
	), h.handleGetCompanyScores)

	// --- 2. Tool: get_roster_scores ---
	s.AddTool(mcp.NewTool("get_roster_scores",
		mcp.WithDescription("Score every company of the roster in roster order."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of records returned.")),
		mcp.WithString("missing_text", mcp.Description("How a tweet without text counts toward average length."), mcp.Enum("empty", "legacy")),
	), h.handleGetRosterScores)

	// --- 3. Tool: get_history_status ---
	s.AddTool(mcp.NewTool("get_history_status",
		mcp.WithDescription("Report the run history backend and how many runs it holds."),
	), h.handleGetHistoryStatus)

	return s
}

// StartMCPServer starts the tweetstats MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
