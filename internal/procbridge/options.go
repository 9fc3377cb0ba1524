package procbridge

import (
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// Options is the parsed form of the CLI's repeatable `-A key=value`
// processor options (§6.3), plus a stable per-session identifier a
// processor can use to correlate its own logging across rounds.
type Options struct {
	SessionID string
	values    map[string]string
}

// NewOptions parses "-A" arguments (each already split from its leading
// "-A" flag) of the form "key=value" or bare "key" (value defaults to
// the empty string, matching javac's own -Akey shorthand).
func NewOptions(args []string) *Options {
	o := &Options{SessionID: uuid.NewString(), values: map[string]string{}}
	for _, a := range args {
		key, value, _ := strings.Cut(a, "=")
		o.values[key] = value
	}
	return o
}

// Has reports whether key was supplied at all (distinct from it being
// supplied with an empty value).
func (o *Options) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// String returns key's raw value, or "" if not supplied.
func (o *Options) String(key string) string { return o.values[key] }

// Int coerces key's value to an int via spf13/cast, defaulting to 0 for a
// missing or unparseable value — processor options are developer-supplied
// strings with no compiler-enforced schema, so a best-effort coercion
// (rather than a hard error) matches how every other "-A" consumer
// (annotation processors in the wild) treats them.
func (o *Options) Int(key string) int {
	return cast.ToInt(o.values[key])
}

// Bool coerces key's value to a bool via spf13/cast ("true"/"1"/"yes"/...
// per cast's own rules), defaulting to false when absent.
func (o *Options) Bool(key string) bool {
	return cast.ToBool(o.values[key])
}

// StringSlice splits key's value on commas via spf13/cast, for an option
// that names a repeated set of values in one "-A" flag.
func (o *Options) StringSlice(key string) []string {
	v := o.values[key]
	if v == "" {
		return nil
	}
	return cast.ToStringSlice(strings.Split(v, ","))
}
