package config

import (
	"os"
	"regexp"
	"runtime"
)

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// windowsEnvAliases maps Unix variable names to their Windows equivalents so
// one config file works on both.
var windowsEnvAliases = map[string]string{
	"HOSTNAME": "COMPUTERNAME",
	"USER":     "USERNAME",
	"HOME":     "USERPROFILE",
}

func mapEnvKey(key string) string {
	if runtime.GOOS != "windows" {
		return key
	}
	if alias, ok := windowsEnvAliases[key]; ok {
		return alias
	}
	return key
}

// replaces $(VAR) with os.Getenv(VAR); unset variables expand to ""
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := mapEnvKey(envPattern.FindStringSubmatch(m)[1])
		return os.Getenv(key)
	})
}
