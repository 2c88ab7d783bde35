package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/seqcalc/internal/ui"
)

// setCustomUsage installs a coloured usage function on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// Respect NO_COLOR even before the theme is initialised.
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		fmt.Fprintf(out, "\n%sSequence Calculator%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Seekable integer sequences, Pascal's triangle, Josephus and Hanoi.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags]\n\n", t.Warning, t.Reset, fs.Name())
		fmt.Fprintf(out, "%sExamples:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s -family lucas -index 10 -count 5\n", fs.Name())
		fmt.Fprintf(out, "  %s -mode binomial -k 2 -n 5\n", fs.Name())
		fmt.Fprintf(out, "  %s -mode hanoi -n 3 -variant restricted\n\n", fs.Name())
		fmt.Fprintf(out, "%sFlags:%s\n", t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := "-" + f.Name
			if len(name) > 0 {
				flagSig += " " + name
			}
			fmt.Fprintf(out, "  %s%-22s%s %s", t.Family, flagSig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Muted, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEvery flag can also be set with a %s<FLAG> environment variable.\n\n", EnvPrefix)
	}
}
