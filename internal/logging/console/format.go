package console

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultTimeFormat prefixes every entry.
const DefaultTimeFormat = "2006-01-02T15:04:05.000Z07:00"

const moduleField = "module"

type entry struct {
	time   time.Time
	level  Level
	logger string
	msg    string
	fields map[string]any
}

// encode renders "<time> <LVL> <logger> <msg> key=value ..." with keys
// sorted. The module field is omitted when it repeats the logger name.
func (e entry) encode(layout string) string {
	var b strings.Builder
	b.WriteString(e.time.Format(layout))
	b.WriteByte(' ')
	b.WriteString(e.level.String())
	if e.logger != "" {
		b.WriteByte(' ')
		b.WriteString(e.logger)
	}
	b.WriteByte(' ')
	b.WriteString(e.msg)

	keys := make([]string, 0, len(e.fields))
	for key := range e.fields {
		if key == moduleField && e.fields[key] == e.logger {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(renderValue(e.fields[key]))
	}
	b.WriteByte('\n')
	return b.String()
}

// pairsToFields folds alternating key/value arguments into a map. Values
// without a usable string key are stored under arg<N>.
func pairsToFields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	fields := make(map[string]any, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			fields["arg"+strconv.Itoa(i/2)] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg" + strconv.Itoa(i/2)
		}
		fields[key] = args[i+1]
	}
	return fields
}

func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case error:
		return quote(v.Error())
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case time.Duration:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		return quote(strings.Join(v, ","))
	case fmt.Stringer:
		return quote(v.String())
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" {
		return `""`
	}
	if strings.ContainsFunc(value, func(r rune) bool {
		return r == '=' || r == '"' || unicode.IsSpace(r) || !unicode.IsPrint(r)
	}) {
		return strconv.Quote(value)
	}
	return value
}
