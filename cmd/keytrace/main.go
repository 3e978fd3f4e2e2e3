// Command keytrace presses the keys given on the command line and prints the
// engine state after each one. It is a debugging aid for the key handling.
//
//	keytrace 3 + 4 x 2 =
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bond-kaneko/go-calc/calc"
	"github.com/bond-kaneko/go-calc/keypad"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("Usage: %s <keys...>\n", os.Args[0])
		os.Exit(1)
	}

	keys, err := keypad.ParseLine(strings.Join(os.Args[1:], " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tDISPLAY\tTOTAL\tPENDING\tEXPR\tENTRY\tFRESH\tMODE")

	e := calc.New()
	for _, k := range keys {
		keypad.Press(e, k)
		s := e.State()
		fmt.Fprintf(tw, "%s\t%q\t%s\t%s\t%q\t%q\t%t\t%s\n",
			k, e.Display(), calc.FormatNumber(s.Total), s.Pending, s.Expr, s.Entry, s.ClearOnNextDigit, s.Mode)
	}
	tw.Flush()
}
