// Command clarans finds k medoids in a file of numeric points.
//
//	clarans -in data.csv -header -k 4 -minima 100 -neighbors 100 -out result.csv
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/TrevorS/clarans/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Main(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
