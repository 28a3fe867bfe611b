package commands

import (
	"fmt"

	"explbot/version"
)

// printStartupBanner prints the user-friendly startup message
func printStartupBanner(listenAddr, dbPath, timezone string) {
	// ANSI escape codes
	cyan := "\033[36m"
	green := "\033[32m"
	yellow := "\033[33m"
	blue := "\033[34m"
	bold := "\033[1m"
	reset := "\033[0m"

	versionInfo := version.Get()

	fmt.Printf("\n%s%s", cyan, bold)
	fmt.Printf("   ╔══════════════════════════════════════╗\n")
	fmt.Printf("   ║   explbot — explanation glossary     ║\n")
	fmt.Printf("   ║   !add a term · !expl it back        ║\n")
	fmt.Printf("   ╚══════════════════════════════════════╝%s\n\n", reset)

	fmt.Printf("%s%s┌─ explbot Info ──────────────────────────────┐%s\n", green, bold, reset)
	fmt.Printf("%s│%s Version:  %s (commit %s)\n", green, reset, versionInfo.Version, versionInfo.Short())
	fmt.Printf("%s│%s Listen:   %s\n", green, reset, listenAddr)
	fmt.Printf("%s│%s Database: %s\n", green, reset, dbPath)
	fmt.Printf("%s│%s Timezone: %s\n", green, reset, timezone)
	fmt.Printf("%s└─────────────────────────────────────────────┘%s\n", green, reset)

	fmt.Printf("\n%s%sPOST /api/command or connect to /ws%s\n", yellow, bold, reset)
	fmt.Printf("%sPress Ctrl+C to stop%s\n\n", blue, reset)
}
