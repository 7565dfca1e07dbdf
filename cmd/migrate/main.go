// migrate applies the embedded SQL migrations up or down.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/egxsim/egxsim/internal/db/migrate"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")

	if err := migrate.Run(dsn, *direction); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("migrations: no change")
			return
		}
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}

	fmt.Println("migrations applied:", *direction)
}
