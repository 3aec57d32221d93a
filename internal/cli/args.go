package cli

import "strings"

// legacyFlags maps the multi-letter single-dash flags of the classic
// release script to their long forms. pflag would read -dso as -d -s -o.
var legacyFlags = map[string]string{
	"-dso": "--delete_so",
	"-dpy": "--delete_py",
}

// NormalizeArgs rewrites legacy flags (-dso 1, -dpy=0) into their long form.
// Everything after a bare "--" is left untouched.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		name, value, hasValue := strings.Cut(arg, "=")
		if long, ok := legacyFlags[name]; ok {
			if hasValue {
				out = append(out, long+"="+value)
			} else {
				out = append(out, long)
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
