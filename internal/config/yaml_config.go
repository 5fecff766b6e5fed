package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// KnownKeys are the configuration keys `maverick config set` accepts.
// Everything the poller reads can also arrive via environment variables;
// the yaml file exists for checkouts that run the poller outside a
// workflow environment.
var KnownKeys = map[string]bool{
	"org":             true,
	"project-number":  true,
	"status-ready":    true,
	"status-inflight": true,
	"repository":      true,
	"kickoff-comment": true,
}

// IsKnownKey returns true if the key is a recognized maverick setting.
func IsKnownKey(key string) bool {
	return KnownKeys[key]
}

// WriteDefaultYaml creates .maverick/config.yaml under dir with the
// given seed values. Fails if the file already exists.
func WriteDefaultYaml(dir string, values map[string]string) (string, error) {
	maverickDir := filepath.Join(dir, ".maverick")
	if err := os.MkdirAll(maverickDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create .maverick directory: %w", err)
	}

	configPath := filepath.Join(maverickDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("%s already exists", configPath)
	}

	// Emit known keys in a stable order; yaml.Marshal on a map would
	// sort too, but building a document node keeps empty values as
	// explicit blanks the operator can fill in.
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: values[k]},
		)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to render config.yaml: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0600); err != nil {
		return "", fmt.Errorf("failed to write config.yaml: %w", err)
	}
	return configPath, nil
}

// ReadYaml parses the config file into a flat map, for `config list`.
func ReadYaml(configPath string) (map[string]string, error) {
	data, err := os.ReadFile(configPath) //nolint:gosec // path is from findConfigYaml
	if err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}
	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
	}
	return values, nil
}

// SetYamlConfig sets a configuration value in the checkout's
// config.yaml. It handles both adding new keys and updating existing
// (possibly commented) keys, preserving surrounding comments.
func SetYamlConfig(key, value string) error {
	configPath, err := findConfigYaml()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(configPath) //nolint:gosec // configPath is from findConfigYaml
	if err != nil {
		return fmt.Errorf("failed to read config.yaml: %w", err)
	}

	newContent := updateYamlKey(string(content), key, value)

	if err := os.WriteFile(configPath, []byte(newContent), 0600); err != nil {
		return fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return nil
}

// GetYamlConfig gets a configuration value by key, reading through the
// viper instance so env overrides stay visible.
func GetYamlConfig(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// findConfigYaml walks up from the working directory to find
// .maverick/config.yaml.
func findConfigYaml() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		configPath := filepath.Join(dir, ".maverick", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", fmt.Errorf("no .maverick/config.yaml found (run 'maverick init' first)")
}

// updateYamlKey updates a key in yaml content, handling commented-out
// keys. If the key exists (commented or not), it is updated in place;
// otherwise it is appended at the end.
func updateYamlKey(content, key, value string) string {
	newLine := fmt.Sprintf("%s: %s", key, formatYamlValue(value))

	// Matches "key: value" or "# key: value" with optional leading whitespace.
	keyPattern := regexp.MustCompile(`^(\s*)(#\s*)?` + regexp.QuoteMeta(key) + `\s*:`)

	found := false
	var result []string

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if keyPattern.MatchString(line) {
			matches := keyPattern.FindStringSubmatch(line)
			indent := ""
			if len(matches) > 1 {
				indent = matches[1]
			}
			result = append(result, indent+newLine)
			found = true
		} else {
			result = append(result, line)
		}
	}

	if !found {
		if len(result) > 0 && result[len(result)-1] != "" {
			result = append(result, "")
		}
		result = append(result, newLine)
	}

	return strings.Join(result, "\n")
}

// formatYamlValue formats a value appropriately for YAML.
func formatYamlValue(value string) string {
	lower := strings.ToLower(value)
	if lower == "true" || lower == "false" {
		return lower
	}
	if isNumeric(value) {
		return value
	}
	if needsQuoting(value) {
		return fmt.Sprintf("%q", value)
	}
	return value
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if c == '-' && i == 0 {
			continue
		}
		if c == '.' {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func needsQuoting(s string) bool {
	special := []string{":", "#", "[", "]", "{", "}", ",", "&", "*", "!", "|", ">", "'", "\"", "%", "@", "`"}
	for _, c := range special {
		if strings.Contains(s, c) {
			return true
		}
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	return false
}
