package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/interfaces"
)

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer
	logger := a.Logger

	s.AddTool(createGetQuoteTool(), handleGetQuote(a.QuoteService, logger))
	s.AddTool(createGetHistoryTool(), handleGetHistory(a.HistoryService, logger))
	s.AddTool(createCompareSymbolsTool(), handleCompareSymbols(a.CompareService, logger))
	s.AddTool(createSearchSymbolsTool(), handleSearchSymbols(a.SearchService, logger))
}

func createGetQuoteTool() mcp.Tool {
	return mcp.NewTool("get_quote",
		mcp.WithDescription("Get the latest quote for a US equity: price, bid/ask, day range, volume, estimated fundamentals and trading hours. Falls back to synthetic data when the provider is unavailable."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Ticker symbol (e.g., 'AAPL')"),
		),
	)
}

func createGetHistoryTool() mcp.Tool {
	return mcp.NewTool("get_history",
		mcp.WithDescription("Get OHLCV price history for a symbol over a lookback period, sorted ascending by date."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Ticker symbol (e.g., 'MSFT')"),
		),
		mcp.WithString("period",
			mcp.Description("Lookback period: 1D, 1W, 1M, 3M, 6M, 1Y, 5Y (default: 1M)"),
		),
	)
}

func createCompareSymbolsTool() mcp.Tool {
	return mcp.NewTool("compare_symbols",
		mcp.WithDescription("Compare up to five symbols over a period: per-symbol performance metrics, best and worst performer, average return and a placeholder correlation matrix."),
		mcp.WithArray("symbols",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Two to five ticker symbols"),
		),
		mcp.WithString("period",
			mcp.Description("Lookback period: 1D, 1W, 1M, 3M, 6M, 1Y, 5Y (default: 1M)"),
		),
	)
}

func createSearchSymbolsTool() mcp.Tool {
	return mcp.NewTool("search_symbols",
		mcp.WithDescription("Search the company directory by ticker or company name."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive substring of a ticker or company name"),
		),
	)
}

func handleGetQuote(svc interfaces.QuoteService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		res, err := svc.GetQuote(ctx, symbol)
		if err != nil {
			logger.Warn().Err(err).Str("symbol", symbol).Msg("get_quote failed")
			return errorResult(fmt.Sprintf("Error getting quote: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func handleGetHistory(svc interfaces.HistoryService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}
		period := request.GetString("period", "")

		res, err := svc.GetHistory(ctx, symbol, period)
		if err != nil {
			logger.Warn().Err(err).Str("symbol", symbol).Str("period", period).Msg("get_history failed")
			return errorResult(fmt.Sprintf("Error getting history: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func handleCompareSymbols(svc interfaces.ComparisonService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbols := request.GetStringSlice("symbols", nil)
		period := request.GetString("period", "")

		res, err := svc.CompareSymbols(ctx, symbols, period)
		if err != nil {
			logger.Warn().Err(err).Strs("symbols", symbols).Str("period", period).Msg("compare_symbols failed")
			return errorResult(fmt.Sprintf("Error comparing symbols: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func handleSearchSymbols(svc interfaces.SearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return errorResult("Error: query parameter is required"), nil
		}

		res, err := svc.SearchSymbols(ctx, query)
		if err != nil {
			logger.Warn().Err(err).Str("query", query).Msg("search_symbols failed")
			return errorResult(fmt.Sprintf("Error searching symbols: %v", err)), nil
		}
		return jsonResult(res)
	}
}

// jsonResult renders v as indented JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Error encoding result: %v", err)), nil
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
