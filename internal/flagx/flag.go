// Package flagx lets several independent loaders share os.Args: each one
// picks out only the flags it owns and parses them with its own FlagSet.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their
// values, in their original order.
//
// Both "-f value" and "-f=value" forms are recognised. A token following an
// allowed flag is taken as its value unless it starts with "-".
func FilterArgs(args []string, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, known := set[name]; known {
				out = append(out, arg)
			}
			continue
		}

		if _, known := set[arg]; !known {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// StringFlag returns the value of the first matching alias in args, or "".
// Aliases are given without the leading dash, e.g. StringFlag(args, "c", "config").
func StringFlag(args []string, aliases ...string) string {
	dashed := make([]string, len(aliases))
	for i, a := range aliases {
		dashed[i] = "-" + a
	}

	var value string
	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, a := range aliases {
		fs.StringVar(&value, a, "", "")
	}
	_ = fs.Parse(FilterArgs(args, dashed))
	return value
}

// ConfigFileFlag returns the JSON config path passed with -c or -config.
func ConfigFileFlag(args []string) string {
	return StringFlag(args, "c", "config")
}

// EnvFileFlag returns the dotenv path passed with -env.
func EnvFileFlag(args []string) string {
	return StringFlag(args, "env")
}
