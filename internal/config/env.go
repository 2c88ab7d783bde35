package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// lookupEnv returns the value of EnvPrefix+key when it is set and non-empty.
func lookupEnv(key string) (string, bool) {
	val := os.Getenv(EnvPrefix + key)
	return val, val != ""
}

func getEnvString(key, defaultVal string) string {
	if val, ok := lookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvUint64, getEnvInt, getEnvFloat64 and getEnvDuration keep the
// default when the variable does not parse.

func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat64(key string, defaultVal float64) float64 {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool accepts "true", "1", "yes" as true and "false", "0", "no" as
// false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := lookupEnv(key); ok {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// isFlagSet reports whether any of the named flags was given on the
// command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to every flag that
// was not explicitly set on the command line, giving the priority
// CLI flags > environment variables > defaults.
//
// Supported environment variables:
//   - SEQCALC_MODE, SEQCALC_FAMILY, SEQCALC_VARIANT, SEQCALC_PORT,
//     SEQCALC_LOG_LEVEL, SEQCALC_LOG_FILE (string)
//   - SEQCALC_START, SEQCALC_STEP, SEQCALC_RATIO (float)
//   - SEQCALC_INDEX, SEQCALC_K, SEQCALC_N (uint64)
//   - SEQCALC_COUNT, SEQCALC_ROWS (int)
//   - SEQCALC_TIMEOUT (duration: "5m", "30s")
//   - SEQCALC_VERIFY, SEQCALC_JSON, SEQCALC_QUIET, SEQCALC_NO_COLOR,
//     SEQCALC_SERVER, SEQCALC_INTERACTIVE (bool: true/false, 1/0, yes/no)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyStringOverrides(config, fs)
	applyNumericOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "mode") {
		config.Mode = getEnvString("MODE", config.Mode)
	}
	if !isFlagSet(fs, "family") {
		config.Family = getEnvString("FAMILY", config.Family)
	}
	if !isFlagSet(fs, "variant") {
		config.Variant = getEnvString("VARIANT", config.Variant)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = getEnvString("LOG_LEVEL", config.LogLevel)
	}
	if !isFlagSet(fs, "log-file") {
		config.LogFile = getEnvString("LOG_FILE", config.LogFile)
	}
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "start") {
		config.Start = getEnvFloat64("START", config.Start)
	}
	if !isFlagSet(fs, "step") {
		config.Step = getEnvFloat64("STEP", config.Step)
	}
	if !isFlagSet(fs, "ratio") {
		config.Ratio = getEnvFloat64("RATIO", config.Ratio)
	}
	if !isFlagSet(fs, "index") {
		config.Index = getEnvUint64("INDEX", config.Index)
	}
	if !isFlagSet(fs, "k") {
		config.K = getEnvUint64("K", config.K)
	}
	if !isFlagSet(fs, "n") {
		config.N = getEnvUint64("N", config.N)
	}
	if !isFlagSet(fs, "count") {
		config.Count = getEnvInt("COUNT", config.Count)
	}
	if !isFlagSet(fs, "rows") {
		config.Rows = getEnvInt("ROWS", config.Rows)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "verify") {
		config.Verify = getEnvBool("VERIFY", config.Verify)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "quiet", "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "interactive") {
		config.Interactive = getEnvBool("INTERACTIVE", config.Interactive)
	}
}
