package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line per significant action (report generated,
// passenger logged in). Keep message to a short summary; report payloads and
// credentials never belong in logs.
func LogEvent(requestID, module, action, message string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("%s.%s request_id=%s %s", strings.ToLower(module), action, rid, message)
}
