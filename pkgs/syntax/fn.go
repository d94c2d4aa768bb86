package syntax

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type FnEntry struct {
	Number int
	On     bool
}

// ParseFnString parses a function list like "0,3,5=off" or "f1=on f2"
// into FnEntry values. A bare number means on; the "f"/"F" prefix is
// optional; later entries win over earlier duplicates.
func ParseFnString(input string, separator string) ([]FnEntry, error) {
	if separator == "" {
		separator = ","
	}

	var result []FnEntry
	unique := make(map[int]bool)
	parts := strings.Split(input, separator)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var fnNum, fnState string
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			fnNum = strings.TrimSpace(kv[0])
			fnState = strings.TrimSpace(kv[1])
		} else {
			fnNum = part
			fnState = "on"
		}

		fnNum = strings.ToLower(fnNum)
		fnNum = strings.TrimPrefix(fnNum, "f")
		num, err := strconv.ParseUint(fnNum, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid function number: %s", fnNum)
		}

		var on bool
		switch strings.ToLower(fnState) {
		case "on", "1", "true":
			on = true
		case "off", "0", "false":
			on = false
		default:
			return nil, fmt.Errorf("invalid function state: %s", fnState)
		}

		unique[int(num)] = on
	}

	for k, v := range unique {
		result = append(result, FnEntry{Number: k, On: v})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}
