package logger

import "strings"

// DefaultMaskValue replaces sensitive values in log output.
const DefaultMaskValue = "***"

// FilterConfig defines which field names are masked in log output.
type FilterConfig struct {
	// SensitiveFields contains field and header names to mask.
	SensitiveFields []string
	// MaskValue replaces sensitive data (default "***").
	MaskValue string
}

// DefaultFilterConfig covers the credential-bearing fields an HTTP
// client is likely to log: auth headers, cookies, API keys.
func DefaultFilterConfig() *FilterConfig {
	return &FilterConfig{
		SensitiveFields: []string{
			"authorization", "proxy-authorization",
			"cookie", "set-cookie",
			"password", "secret", "token",
			"api_key", "apikey", "x-api-key",
			"auth", "credential", "credentials",
		},
		MaskValue: DefaultMaskValue,
	}
}

// SensitiveDataFilter masks credential-bearing values before they reach
// log output. Matching is case-insensitive on field names.
type SensitiveDataFilter struct {
	sensitive map[string]struct{}
	mask      string
}

// NewSensitiveDataFilter creates a filter from config; nil config uses
// the defaults.
func NewSensitiveDataFilter(config *FilterConfig) *SensitiveDataFilter {
	if config == nil {
		config = DefaultFilterConfig()
	}
	mask := config.MaskValue
	if mask == "" {
		mask = DefaultMaskValue
	}

	sensitive := make(map[string]struct{}, len(config.SensitiveFields))
	for _, name := range config.SensitiveFields {
		sensitive[strings.ToLower(name)] = struct{}{}
	}
	return &SensitiveDataFilter{sensitive: sensitive, mask: mask}
}

// IsSensitive reports whether the field name should be masked.
func (f *SensitiveDataFilter) IsSensitive(name string) bool {
	_, ok := f.sensitive[strings.ToLower(name)]
	return ok
}

// FilterString masks value when key names a sensitive field.
func (f *SensitiveDataFilter) FilterString(key, value string) string {
	if f.IsSensitive(key) {
		return f.mask
	}
	return value
}

// FilterValue masks scalar values for sensitive keys and walks string
// maps, masking sensitive entries. Header maps logged as a whole pass
// through here.
func (f *SensitiveDataFilter) FilterValue(key string, value any) any {
	if f.IsSensitive(key) {
		return f.mask
	}

	switch m := value.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, v := range m {
			if f.IsSensitive(k) {
				out[k] = f.mask
			} else {
				out[k] = v
			}
		}
		return out
	case map[string][]string:
		out := make(map[string][]string, len(m))
		for k, v := range m {
			if f.IsSensitive(k) {
				out[k] = []string{f.mask}
			} else {
				out[k] = v
			}
		}
		return out
	}
	return value
}

// FilterFields returns a copy of fields with sensitive entries masked.
func (f *SensitiveDataFilter) FilterFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = f.FilterValue(k, v)
	}
	return out
}
