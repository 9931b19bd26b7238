// Package debug holds the process-wide debug flag that gates verbose
// logging and the (rarely taken) slow-path consistency checks in the
// vector commitment and lottery layers.
package debug

import "os"

// Debug is true when the JACKPOT_DEBUG environment variable is set.
// Unlike gnark's circuit debug mode, there is no constraint system to
// annotate here, so this only toggles log verbosity and optional
// self-checks (e.g. re-verifying an FK-precomputed opening the slow way).
var Debug = os.Getenv("JACKPOT_DEBUG") != ""
