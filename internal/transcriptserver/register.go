// Package transcriptserver registers the YouTube transcript MCP tools.
package transcriptserver

import (
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 4

var limiters *toolutil.Limiters

// RegisterTools registers youtube_transcript, youtube_summarize, youtube_ask
// and youtube_search. Call after engine.Init.
func RegisterTools(server *mcp.Server) {
	limiters = toolutil.NewLimiters(engine.Cfg.ToolRateLimit, engine.Cfg.ToolRateBurst)

	registerTranscript(server)
	registerSummarize(server)
	registerAsk(server)
	registerSearch(server)
}
