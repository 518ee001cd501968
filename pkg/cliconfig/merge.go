package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-empty values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	merge := func(key, value string, dst *string) {
		if value != "" {
			*dst = value
			target.Sources[key] = sourceType
		}
	}
	merge(KeySchema, source.Schema, &target.Schema)
	merge(KeyRoot, source.Root, &target.Root)
	merge(KeyIndent, source.Indent, &target.Indent)
	merge(KeyLogLevel, source.LogLevel, &target.LogLevel)
	merge(KeyLogFormat, source.LogFormat, &target.LogFormat)
}
