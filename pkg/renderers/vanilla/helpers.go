package vanilla

import (
	"fmt"
	"hash/fnv"
	"strings"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "cf-" + trimmed
}

// formID derives a stable, unique DOM id for a form so several forms for the
// same entity can live on one page.
func formID(table string, intent string, seed []string) string {
	h := fnv.New32a()
	h.Write([]byte(table))
	h.Write([]byte(intent))
	for _, s := range seed {
		h.Write([]byte(s))
	}
	return fmt.Sprintf("crudform-%s-%s-%08x", intent, table, h.Sum32())
}
