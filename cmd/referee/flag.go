// Package main starts a single Labyrinth tournament: it opens a
// signup port, admits players within the waiting-period window, and
// runs one game to completion.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

const (
	environmentVariableSignupPort       = "SIGNUP_PORT"
	environmentVariableWaitingPeriodSec = "WAITING_PERIOD_SEC"
	environmentVariableMinToStart       = "MIN_TO_START"
	environmentVariableMaxToStart       = "MAX_TO_START"
	environmentVariableNPeriods         = "N_PERIODS"
	environmentVariableTurnTimeoutMs    = "TURN_TIMEOUT_MS"
	environmentVariableMaxRounds        = "MAX_ROUNDS"
	environmentVariableDebug            = "DEBUG_REFEREE"
)

type mainFlags struct {
	signupPort       int
	waitingPeriodSec int
	minToStart       int
	maxToStart       int
	nPeriods         int
	turnTimeoutMs    int
	maxRounds        int
	debug            bool
}

func usage(fs *flag.FlagSet) {
	envVars := []string{
		environmentVariableSignupPort,
		environmentVariableWaitingPeriodSec,
		environmentVariableMinToStart,
		environmentVariableMaxToStart,
		environmentVariableNPeriods,
		environmentVariableTurnTimeoutMs,
		environmentVariableMaxRounds,
		environmentVariableDebug,
	}
	fmt.Fprintln(fs.Output(), "Runs a single Labyrinth tournament")
	fmt.Fprintln(fs.Output(), "Reads environment variables when possible:", fmt.Sprintf("[%s]", strings.Join(envVars, ",")))
	fmt.Fprintln(fs.Output(), fmt.Sprintf("Usage of %s:", fs.Name()))
	fs.PrintDefaults()
}

// newFlagSet creates a flagSet that populates the specified mainFlags.
func (m *mainFlags) newFlagSet(osLookupEnvFunc func(string) (string, bool)) *flag.FlagSet {
	fs := flag.NewFlagSet("main", flag.ExitOnError)
	fs.Usage = func() { usage(fs) }

	envOrDefault := func(key, defaultValue string) string {
		if envValue, ok := osLookupEnvFunc(key); ok {
			return envValue
		}
		return defaultValue
	}
	envOrDefaultInt := func(key string, defaultValue int) int {
		v1 := envOrDefault(key, strconv.Itoa(defaultValue))
		if v2, err := strconv.Atoi(v1); err == nil {
			return v2
		}
		return defaultValue
	}
	envPresent := func(key string) bool {
		_, ok := osLookupEnvFunc(key)
		return ok
	}
	fs.IntVar(&m.signupPort, "signup-port", envOrDefaultInt(environmentVariableSignupPort, 5000), "The TCP port players connect to during signup.")
	fs.IntVar(&m.waitingPeriodSec, "waiting-period-sec", envOrDefaultInt(environmentVariableWaitingPeriodSec, 20), "The length, in seconds, of one admission waiting period.")
	fs.IntVar(&m.minToStart, "min-to-start", envOrDefaultInt(environmentVariableMinToStart, 2), "The minimum roster size that, checked at the end of each waiting period, starts the game.")
	fs.IntVar(&m.maxToStart, "max-to-start", envOrDefaultInt(environmentVariableMaxToStart, 6), "The roster size cap; surplus connections are closed unplayed.")
	fs.IntVar(&m.nPeriods, "n-periods", envOrDefaultInt(environmentVariableNPeriods, 2), "How many waiting periods are given before giving up.")
	fs.IntVar(&m.turnTimeoutMs, "turn-timeout-ms", envOrDefaultInt(environmentVariableTurnTimeoutMs, 5000), "How long, in milliseconds, a player has to respond to a single call.")
	fs.IntVar(&m.maxRounds, "max-rounds", envOrDefaultInt(environmentVariableMaxRounds, 1000), "The round cap before the game is called for whoever is closest to victory.")
	fs.BoolVar(&m.debug, "debug", envPresent(environmentVariableDebug), "Logs admission and turn-by-turn events if present.")
	return fs
}

// newMainFlags creates a new, populated mainFlags structure. Fields
// are populated from command line arguments; if a field is not
// specified on the command line, its environment variable value is
// used before defaulting.
func newMainFlags(osArgs []string, osLookupEnvFunc func(string) (string, bool)) mainFlags {
	if len(osArgs) == 0 {
		osArgs = []string{""}
	}
	programArgs := osArgs[1:]
	var m mainFlags
	fs := m.newFlagSet(osLookupEnvFunc)
	fs.Parse(programArgs)
	return m
}
