package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// MaxSafeAutosaveInterval bounds how much progress a crash may lose before
// ValidateEnvWithWarnings complains
const MaxSafeAutosaveInterval = 30 * time.Minute

// RequiredEnvVars lists the environment variables a production deployment
// must set explicitly
var RequiredEnvVars = []string{
	EnvAPIKey,
	EnvDBUser,
	EnvDBPassword,
	EnvDBHost,
	EnvDBName,
}

// ValidateEnv checks that all required environment variables are set
func ValidateEnv() error {
	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv(EnvDBPassword) == DefaultDBPassword {
		warnings = append(warnings, "DB_PASSWORD is the default value - please use a secure password")
	}

	if len(os.Getenv(EnvAPIKey)) < 16 {
		warnings = append(warnings, "API_KEY is shorter than 16 characters - generate a secure key with: openssl rand -hex 32")
	}

	if d := getEnvAsDuration(EnvAutosaveInterval, DefaultAutosaveInterval); d > MaxSafeAutosaveInterval {
		warnings = append(warnings, fmt.Sprintf("AUTOSAVE_INTERVAL is %s - a crash loses up to that much character progress", d))
	}

	return warnings, nil
}
