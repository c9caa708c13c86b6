package tools

// Schema builders for the advertised input contracts. Every object is closed.

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func idProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"minLength":   1,
		"description": description,
	}
}

func stringProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

func boundedString(description string, minLength, maxLength int) map[string]any {
	prop := stringProperty(description)
	if minLength > 0 {
		prop["minLength"] = minLength
	}
	if maxLength > 0 {
		prop["maxLength"] = maxLength
	}
	return prop
}

func boolProperty(description string, def bool) map[string]any {
	return map[string]any{
		"type":        "boolean",
		"description": description,
		"default":     def,
	}
}

func integerProperty(description string, minimum, maximum, def int) map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": description,
		"minimum":     minimum,
		"maximum":     maximum,
		"default":     def,
	}
}

// channelScoped and guildScoped are the contracts of tools taking a single id.
func channelScoped(description string) map[string]any {
	return objectSchema(map[string]any{
		"channelId": idProperty(description),
	}, "channelId")
}

func guildScoped(description string) map[string]any {
	return objectSchema(map[string]any{
		"guildId": idProperty(description),
	}, "guildId")
}
