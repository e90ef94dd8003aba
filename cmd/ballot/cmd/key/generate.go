package key

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/common/keypair"
)

var (
	GenerateCmd *cobra.Command

	flagParse     bool
	flagKeyFormat string
)

type keyPair struct {
	Seed    string `json:"seed"`
	Address string `json:"address"`
}

var defaultTemplate = template.Must(template.New("").Parse(`   Secret Seed: {{ .Seed }}
Public Address: {{ .Address }}
`))

func defaultEncode(v interface{}, w io.Writer) error {
	return defaultTemplate.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(keyPair)
	_, err := fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return err
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate [<secret seed or passphrase>]",
		Short: "Generate keypair",
		Args:  cobra.MaximumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			input := strings.TrimSpace(strings.Join(args, " "))
			if flagParse && len(input) < 1 {
				common.PrintFlagsError(c, "--parse", fmt.Errorf("--parse needs <secret seed>"))
			}

			kp, err := GenerateKP(input, flagParse)
			if err != nil {
				common.PrintFlagsError(c, "<secret seed>", err)
			}

			encoders := map[string]common.Encode{
				"json":       common.DefaultEncodes["json"],
				"prettyjson": common.DefaultEncodes["prettyjson"],
				"yaml":       common.DefaultEncodes["yaml"],
				"default":    defaultEncode,
				"oneline":    onelineEncode,
			}

			encode, ok := encoders[flagKeyFormat]
			if !ok {
				common.PrintFlagsError(c, "--key-format", fmt.Errorf(`"%s" not recognized`, flagKeyFormat))
			}

			if err := encode(keyPair{Seed: kp.Seed(), Address: kp.Address()}, os.Stdout); err != nil {
				common.PrintError(os.Stderr, err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", false, "parse secret seed")
	GenerateCmd.Flags().StringVar(&flagKeyFormat, "key-format", "default", "format={default, json, oneline, prettyjson, yaml}")
}

// GenerateKP makes the random keypair from the empty input. With fromSeed
// the input is parsed as secret seed, otherwise the keypair is derived from
// the input as passphrase.
func GenerateKP(input string, fromSeed bool) (*keypair.Full, error) {
	switch {
	case fromSeed:
		return common.ParseSecretSeed(input)
	case len(input) < 1:
		return keypair.RandomCanFail()
	default:
		return keypair.Master(input).(*keypair.Full), nil
	}
}
