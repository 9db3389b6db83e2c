package utils

import "sort"

// ReverseStrMap inverts a map value->key. When two keys share a value the
// first key in sorted order wins, so the result is deterministic.
func ReverseStrMap(originalMap map[string]string) map[string]string {
	keys := make([]string, 0, len(originalMap))
	for key := range originalMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	reversedMap := make(map[string]string)
	for _, key := range keys {
		value := originalMap[key]
		if _, exists := reversedMap[value]; !exists {
			reversedMap[value] = key
		}
	}
	return reversedMap
}
