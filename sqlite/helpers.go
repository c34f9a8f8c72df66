package sqlite

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ramprice"
)

// fingerprint identifies a record by its date, module type, store and
// shorthand, so the same observation imported twice is stored once.
func fingerprint(r ramprice.PriceRecord) string {
	d := xxhash.New()
	for _, part := range []string{r.Date().String(), r.ModuleType(), r.Store(), r.Shorthand()} {
		_, _ = d.WriteString(part)
		_, _ = d.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 || offset > 0 {
		// SQLite requires a LIMIT before OFFSET; -1 means no limit.
		if limit <= 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
