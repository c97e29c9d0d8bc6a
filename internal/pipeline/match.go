package pipeline

import (
	"strings"

	"orderdesk/internal"
)

// FindOrder resolves an (order id, email) pair against the loaded table.
// Step 1 checks whether the id exists at all; step 2 requires the normalized
// e-mail to match too. The first row satisfying step 2 wins; duplicate pairs
// are not treated as an error.
func FindOrder(table []internal.OrderRecord, orderID, email string) internal.MatchResult {
	normalized := strings.ToLower(strings.TrimSpace(email))

	idExists := false
	for i := range table {
		if table[i].OrderID != orderID {
			continue
		}
		idExists = true
		if table[i].Email == normalized {
			return internal.MatchResult{Status: internal.MatchFound, Record: &table[i]}
		}
	}

	if idExists {
		return internal.MatchResult{Status: internal.MatchEmailMismatch}
	}
	return internal.MatchResult{Status: internal.MatchNotFound}
}
