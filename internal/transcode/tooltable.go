package transcode

import "fmt"

// toolDescription is the client-facing narration for one agent tool.
type toolDescription struct {
	Title       string
	Description string
}

// toolDescriptions is read-only configuration mapping tool names to the
// thinking indicator shown while that tool runs.
var toolDescriptions = map[string]toolDescription{
	"searchBills":   {"Searching bills", "Looking up legislation in the congressional record"},
	"getBillDetail": {"Reading bill text", "Pulling the full text and status of the bill"},
	"searchMembers": {"Finding members", "Looking up members of Congress and their roles"},
	"searchNews":    {"Scanning the news", "Checking recent coverage for context"},
	"smartSql":      {"Querying the database", "Running a structured query over legislative data"},
}

// describeTool returns the narration for a tool, with a generic entry for
// names not in the table.
func describeTool(toolName string) toolDescription {
	if d, ok := toolDescriptions[toolName]; ok {
		return d
	}
	return toolDescription{
		Title:       fmt.Sprintf("Running %s", toolName),
		Description: "Working on your request",
	}
}

// streamableToolResults is the allow-list of tool names whose results the
// client renders as UI components. Results from any other tool are dropped
// from the wire protocol; the agent may still have used them upstream.
var streamableToolResults = map[string]bool{
	"searchBills":   true,
	"searchMembers": true,
	"searchNews":    true,
	"smartSql":      true,
}
