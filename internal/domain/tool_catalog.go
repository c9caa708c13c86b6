package domain

// ToolSpec is one entry of the tool catalog advertised to the host.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// CatalogStats summarizes the registered tools.
type CatalogStats struct {
	Total int      `json:"total"`
	Names []string `json:"names"`
}
