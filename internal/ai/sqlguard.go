package ai

import "strings"

// deniedTokens may not appear anywhere in a generated query. The check is
// textual; execution also runs inside a read-only transaction.
var deniedTokens = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "TRUNCATE", "ALTER", "CREATE",
	"EXEC", "EXECUTE", "GRANT", "REVOKE", "--", "/*",
}

// CleanSQL removes markdown code fences and surrounding whitespace
func CleanSQL(raw string) string {
	s := strings.ReplaceAll(raw, "```sql", "")
	s = strings.ReplaceAll(s, "```SQL", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// IsSelectQuery reports whether query is a single SELECT statement free of
// denied keywords. Semicolons are only allowed at the very end.
func IsSelectQuery(query string) bool {
	upper := strings.ToUpper(strings.TrimSpace(query))
	if !strings.HasPrefix(upper, "SELECT") {
		return false
	}

	for _, token := range deniedTokens {
		if strings.Contains(upper, token) {
			return false
		}
	}

	return !strings.Contains(strings.TrimRight(upper, ";"), ";")
}
