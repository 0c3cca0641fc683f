package sqldb

import (
	"strconv"
	"strings"
)

var PlaceholderPrefixForDBType = map[string]byte{
	"mysql": '?',
	"pgsql": '$',
}

// ReplaceStaticPlaceholders rewrites `?` placeholders to the indexed form of
// the target dialect (e.g. $1, $2 for pgsql). `?` stays untouched for prefix '?'.
func ReplaceStaticPlaceholders(sql string, prefix byte) string {
	if prefix == '?' || prefix == 0 {
		return sql
	}
	var builder strings.Builder
	builder.Grow(len(sql) + 8)
	cnt := 1
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' {
			builder.WriteByte(prefix)
			builder.WriteString(strconv.Itoa(cnt))
			cnt++
			continue
		}
		builder.WriteByte(sql[i])
	}
	return builder.String()
}

// ForDialect converts a `?`-style statement to the dialect of dbType
func ForDialect(sql string, dbType string) string {
	prefix, ok := PlaceholderPrefixForDBType[dbType]
	if !ok {
		return sql
	}
	return ReplaceStaticPlaceholders(sql, prefix)
}
