package cli

import (
	"flag"
	"fmt"

	"pahmm/internal/version"
)

// NewFlagSet returns a ContinueOnError FlagSet with the grouped help text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s: align HMM pA-site predictions with reference experiments\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintf(out, "Usage:\n  %s --gene ID [flags] PREDICTION\n  %s --gene ID1,ID2 --prediction-dir DIR [flags]\n", name, name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -g, --gene string             Gene id, or a comma list for batch mode [*]")
		fmt.Fprintln(out, "  -p, --prediction file         HMM per-base output, or '-' for STDIN")
		fmt.Fprintln(out, "      --prediction-dir dir      Directory holding <gene>.pos.txt per gene")
		fmt.Fprintf(out, "      --data-dir dir            Reference corpus directory [%s]\n", def("data-dir"))
		fmt.Fprintln(out, "      --config file             TOML configuration (flags override it)")

		fmt.Fprintln(out, "\nAlignment:")
		fmt.Fprintf(out, "  -b, --upstream-buffer int     Bases upstream of the CDS start in the prediction [%s]\n", def("upstream-buffer"))
		fmt.Fprintf(out, "      --match string            Gene id match: substring | exact [%s]\n", def("match"))
		fmt.Fprintf(out, "  -j, --jobs int                Genes aligned at once (0=all) [%s]\n", def("jobs"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string           Output: text | json | jsonl | csv [%s]\n", def("output"))
		fmt.Fprintf(out, "      --cells                   Append heatmap cells to text output [%s]\n", def("cells"))
		fmt.Fprintf(out, "      --no-header               Suppress header lines [%s]\n", def("no-header"))
		fmt.Fprintln(out, "      --plot file               Render a figure (.svg .png .pdf .eps .jpg .tif)")
		fmt.Fprintf(out, "      --layout string           Figure layout: independent | staged [%s]\n", def("layout"))

		fmt.Fprintln(out, "\nWaiting:")
		fmt.Fprintf(out, "  -w, --wait duration           Wait this long for the prediction file (0=must exist) [%s]\n", def("wait"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "      --dump-config             Print the effective configuration and exit")
		fmt.Fprintf(out, "  -q, --quiet                   Errors only on stderr [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --verbose                 Debug logging on stderr [%s]\n", def("verbose"))
		fmt.Fprintln(out, "  -v, --version                 Print version and exit")
		fmt.Fprintln(out, "  -h, --help                    Show this help and exit")
	}
	return fs
}
