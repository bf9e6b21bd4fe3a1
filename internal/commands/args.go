package commands

import "strings"

// popFlag removes the first occurrence of any of names from args, reporting
// whether one was present. Lets flags trail positional arguments.
func popFlag(args []string, names ...string) (bool, []string) {
	for i, a := range args {
		for _, n := range names {
			if a == n {
				return true, append(append([]string{}, args[:i]...), args[i+1:]...)
			}
		}
	}
	return false, args
}

// popValueFlag removes the first occurrence of any of names plus its value,
// accepting both "--flag value" and "--flag=value" spellings.
func popValueFlag(args []string, names ...string) (string, bool, []string, error) {
	for i, a := range args {
		for _, n := range names {
			if a == n {
				if i+1 >= len(args) {
					return "", false, nil, Usagef("%s requires a value", n)
				}
				val := args[i+1]
				rest := append(append([]string{}, args[:i]...), args[i+2:]...)
				return val, true, rest, nil
			}
			if strings.HasPrefix(a, n+"=") {
				val := strings.TrimPrefix(a, n+"=")
				rest := append(append([]string{}, args[:i]...), args[i+1:]...)
				return val, true, rest, nil
			}
		}
	}
	return "", false, args, nil
}
