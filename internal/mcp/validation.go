package mcp

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mark-chris/prodcat/internal/keywords"
	"github.com/mark-chris/prodcat/internal/search"
)

// validateToolName checks the tool exists
func validateToolName(name string) error {
	switch name {
	case toolSearch, toolKeywords:
		return nil
	default:
		return invalidParams("unknown tool: %s", name)
	}
}

// requiredString returns a non-blank string argument
func requiredString(args map[string]interface{}, key string) (string, error) {
	v, _ := args[key].(string)
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%s must be non-empty", key)
	}
	return v, nil
}

// validateThreshold returns the threshold argument, or def when absent
func validateThreshold(args map[string]interface{}, def float64) (float64, error) {
	raw, ok := args["threshold"]
	if !ok {
		return def, nil
	}
	th, ok := raw.(float64)
	if !ok || th < 0 || th > 1 {
		return 0, fmt.Errorf("Invalid threshold '%v'. Must be a number between 0 and 1", raw)
	}
	return th, nil
}

// optionalInt returns an integer argument >= min, or def when absent
func optionalInt(args map[string]interface{}, key string, def, min int) (int, error) {
	raw, ok := args[key]
	if !ok {
		return def, nil
	}
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) || f < float64(min) || f > math.MaxInt32 {
		return 0, fmt.Errorf("Invalid %s '%v'. Must be an integer >= %d", key, raw, min)
	}
	return int(f), nil
}

// validateVerbosity validates the verbosity parameter
func validateVerbosity(args map[string]interface{}) (search.Verbosity, error) {
	raw, ok := args["verbosity"]
	if !ok {
		return search.VerbosityAgent, nil
	}
	v, _ := raw.(string)
	switch search.Verbosity(v) {
	case "", search.VerbosityAgent:
		return search.VerbosityAgent, nil
	case search.VerbosityHuman:
		return search.VerbosityHuman, nil
	default:
		return "", fmt.Errorf("Invalid verbosity '%v'. Supported values: agent, human", raw)
	}
}

// validateStrategy validates the strategy parameter
func validateStrategy(args map[string]interface{}, def keywords.Strategy) (keywords.Strategy, error) {
	raw, ok := args["strategy"]
	if !ok {
		return def, nil
	}
	v, _ := raw.(string)
	if v == "" {
		return def, nil
	}
	strategy, err := keywords.ParseStrategy(v)
	if err != nil {
		return "", fmt.Errorf("Invalid strategy '%s'. Supported values: domain, generic", v)
	}
	return strategy, nil
}

// validateNoUnknownParams checks for unknown parameters
func validateNoUnknownParams(args map[string]interface{}, allowed []string) error {
	allowedMap := make(map[string]bool)
	for _, key := range allowed {
		allowedMap[key] = true
	}

	var unknown []string
	for key := range args {
		if !allowedMap[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	return fmt.Errorf("Unknown parameter '%s'. Supported parameters: %s", unknown[0], strings.Join(allowed, ", "))
}
