package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Strings are used for identifiers and URLs; the
// two collaborator base URLs point at the payment provider facade and the
// student verification service.
type Config struct {
	Env                 string // application environment (e.g. "dev", "prod")
	Port                string // HTTP port to listen on
	PaymentBaseURL      string // base URL of the payment provider facade
	VerificationBaseURL string // base URL of the student verification service
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:                 must("APP_ENV"),               // environment (dev/test/prod)
		Port:                must("APP_PORT"),              // port to bind the HTTP server
		PaymentBaseURL:      must("PAYMENT_BASE_URL"),      // payment provider facade
		VerificationBaseURL: must("VERIFICATION_BASE_URL"), // student verification service
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
