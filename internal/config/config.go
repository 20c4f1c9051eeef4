package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Seat bounds apply to the seats argument of
// every reservation request; the event fields are used once at seeding
// time and again by the admin reset endpoint.
type Config struct {
	Env                 string // application environment (e.g. "dev", "prod")
	Port                string // HTTP port to listen on
	DBUser              string // database username
	DBPass              string // database password (optional)
	DBHost              string // database host address
	DBPort              string // database port number
	DBName              string // database name
	EventID             string // identifier of the tracked event's seat pool
	EventName           string // display name of the tracked event
	TotalSeats          int64  // seed value for total capacity
	AvailableSeats      int64  // seed value for available seats
	Version             int64  // seed value for the pool version counter
	MinSeats            int64  // lower bound on seats per reservation
	LimitPerReservation int64  // upper bound on seats per reservation
	AdminSecret         string // shared secret for the admin reset endpoint
}

// Load reads configuration values from environment variables and returns
// a Config.  A .env file in the working directory is applied first when
// present; real environment variables always win.  Required variables
// are enforced by must() and missing values cause the program to exit
// with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // best effort; absence of .env is not an error

	return Config{
		Env:                 getenv("APP_ENV", "dev"),
		Port:                must("APP_PORT"),
		DBUser:              must("DB_USER"),
		DBPass:              os.Getenv("DB_PASS"), // empty allowed
		DBHost:              must("DB_HOST"),
		DBPort:              must("DB_PORT"),
		DBName:              must("DB_NAME"),
		EventID:             must("EVENT_ID"),
		EventName:           getenv("EVENT_NAME", "Main Event"),
		TotalSeats:          envInt64("TOTAL_SEATS", 100),
		AvailableSeats:      envInt64("AVAILABLE_SEATS", 100),
		Version:             envInt64("VERSION", 0),
		MinSeats:            envInt64("MIN_SEATS", 1),
		LimitPerReservation: envInt64("LIMIT_PER_RESERVATION", 10),
		AdminSecret:         must("ADMIN_SECRET"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the variable's value or the supplied default when unset.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt64 parses an integer environment variable, falling back to the
// default on absence or malformed input.
func envInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return def
}
